package models

import (
	"time"
)

type Comment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          string    `gorm:"not null;index;size:36" json:"userId"`
	User            User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PostID          uint      `gorm:"not null;index" json:"postId"` // root post, denormalized at every depth
	Post            Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ParentCommentID *uint     `gorm:"index" json:"parentCommentId"` // nil for top-level comments
	Content         string    `gorm:"type:text;not null" json:"content"`
	Depth           int       `gorm:"not null;default:0" json:"depth"`
	CommentCount    int       `gorm:"not null;default:0" json:"commentCount"` // direct replies only
	Points          int       `gorm:"not null;default:0" json:"points"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Filled by the listing engine when child expansion is requested.
	ChildComments []Comment `gorm:"-" json:"-"`
}
