package repository

import (
	"context"

	"emberlink/internal/apperr"
	"emberlink/internal/models"

	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// PostFilter narrows listings by exact owner id and/or exact URL; both are
// optional and combine with AND.
type PostFilter struct {
	Author string
	Site   string
}

func (r *PostRepository) Create(ctx context.Context, userID, title, url, content string) (*models.Post, error) {
	post := models.Post{
		UserID:  userID,
		Title:   title,
		URL:     url,
		Content: content,
	}
	if err := r.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, apperr.Internal("failed to create post", err)
	}
	return &post, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error
	if isNotFound(err) {
		return nil, apperr.NotFound("Post not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to load post", err)
	}
	return &post, nil
}

// List returns one page of posts plus pagination metadata. The count and the
// page query share the same filter; out-of-range pages come back empty with
// a valid totalPages.
func (r *PostRepository) List(ctx context.Context, filter PostFilter, params ListParams) ([]models.Post, models.Pagination, error) {
	params = params.normalized()

	filtered := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Post{})
		if filter.Author != "" {
			q = q.Where("user_id = ?", filter.Author)
		}
		if filter.Site != "" {
			q = q.Where("url = ?", filter.Site)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, models.Pagination{}, apperr.Internal("failed to count posts", err)
	}

	var posts []models.Post
	err := filtered().Preload("User").
		Order(params.orderClause()).
		Limit(params.Limit).
		Offset(params.offset()).
		Find(&posts).Error
	if err != nil {
		return nil, models.Pagination{}, apperr.Internal("failed to list posts", err)
	}

	return posts, pagination(params, total), nil
}

// UpvotedByViewer batch-resolves which of the given posts the viewer has an
// active vote on. Returns an empty map for an empty viewer.
func (r *PostRepository) UpvotedByViewer(ctx context.Context, viewerID string, postIDs []uint) (map[uint]bool, error) {
	upvoted := make(map[uint]bool)
	if viewerID == "" || len(postIDs) == 0 {
		return upvoted, nil
	}

	var rows []models.PostUpvote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id IN ?", viewerID, postIDs).
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Internal("failed to load viewer votes", err)
	}
	for _, row := range rows {
		upvoted[row.PostID] = true
	}
	return upvoted, nil
}
