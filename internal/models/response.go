package models

import (
	"time"
)

// Response DTOs. Every field is always populated by the constructors below;
// collections default to empty slices, never nil, so the client never has to
// guess whether an absent array means "none" or "not loaded".

type Pagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type PostResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	Content      string    `json:"content"`
	ContentHTML  string    `json:"contentHtml"`
	Points       int       `json:"points"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	Author       Author    `json:"author"`
	IsUpvoted    bool      `json:"isUpvoted"`
}

type CommentResponse struct {
	ID              uint              `json:"id"`
	PostID          uint              `json:"postId"`
	ParentCommentID *uint             `json:"parentCommentId"`
	Content         string            `json:"content"`
	ContentHTML     string            `json:"contentHtml"`
	Depth           int               `json:"depth"`
	CommentCount    int               `json:"commentCount"`
	Points          int               `json:"points"`
	CreatedAt       time.Time         `json:"createdAt"`
	Author          Author            `json:"author"`
	IsUpvoted       bool              `json:"isUpvoted"`
	ChildComments   []CommentResponse `json:"childComments"`
}

func NewAuthor(u User) Author {
	return Author{ID: u.ID, Username: u.Username}
}

func NewPostResponse(p Post, author User, isUpvoted bool, contentHTML string) PostResponse {
	return PostResponse{
		ID:           p.ID,
		Title:        p.Title,
		URL:          p.URL,
		Content:      p.Content,
		ContentHTML:  contentHTML,
		Points:       p.Points,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
		Author:       NewAuthor(author),
		IsUpvoted:    isUpvoted,
	}
}

func NewCommentResponse(c Comment, author User, isUpvoted bool, contentHTML string) CommentResponse {
	return CommentResponse{
		ID:              c.ID,
		PostID:          c.PostID,
		ParentCommentID: c.ParentCommentID,
		Content:         c.Content,
		ContentHTML:     contentHTML,
		Depth:           c.Depth,
		CommentCount:    c.CommentCount,
		Points:          c.Points,
		CreatedAt:       c.CreatedAt,
		Author:          NewAuthor(author),
		IsUpvoted:       isUpvoted,
		ChildComments:   []CommentResponse{},
	}
}
