package models

import (
	"time"
)

// PostUpvote is one user's active vote on one post. The toggle engine keeps
// at most one row per (PostID, UserID) pair; the check happens inside its
// transaction rather than through a unique index, so all writers must go
// through the engine.
type PostUpvote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"postId"`
	UserID    string    `gorm:"not null;index;size:36" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentUpvote mirrors PostUpvote for comments.
type CommentUpvote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;index" json:"commentId"`
	UserID    string    `gorm:"not null;index;size:36" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
