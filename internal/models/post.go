package models

import (
	"time"
)

type Post struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"not null;index;size:36" json:"userId"`
	User         User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Title        string    `gorm:"not null" json:"title"`
	URL          string    `json:"url"` // Optional; at least one of URL/Content is required
	Content      string    `gorm:"type:text" json:"content"`
	Points       int       `gorm:"not null;default:0" json:"points"`
	CommentCount int       `gorm:"not null;default:0" json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
