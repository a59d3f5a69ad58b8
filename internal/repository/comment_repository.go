package repository

import (
	"context"

	"emberlink/internal/apperr"
	"emberlink/internal/models"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// CreateTopLevel inserts a direct comment on a post. The post's counter bump
// and the insert commit or roll back together.
func (r *CommentRepository) CreateTopLevel(ctx context.Context, postID uint, authorID, content string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := incrementCounter(tx, &models.Post{}, postID, "comment_count", 1); err != nil {
			if isNotFound(err) {
				return apperr.NotFound("Post not found")
			}
			return err
		}

		comment = models.Comment{
			UserID:  authorID,
			PostID:  postID,
			Content: content,
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, apperr.From(err)
	}
	return &comment, nil
}

// CreateReply inserts a child comment under parentID. The root post id and
// the depth are derived from the parent inside the transaction, never trusted
// from the caller. Parent and post counters both move exactly once.
func (r *CommentRepository) CreateReply(ctx context.Context, parentID uint, authorID, content string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent models.Comment
		if err := forUpdate(tx).First(&parent, parentID).Error; err != nil {
			if isNotFound(err) {
				return apperr.NotFound("Comment not found")
			}
			return err
		}

		if _, err := incrementCounter(tx, &models.Comment{}, parent.ID, "comment_count", 1); err != nil {
			if isNotFound(err) {
				return apperr.NotFound("Comment not found")
			}
			return err
		}
		if _, err := incrementCounter(tx, &models.Post{}, parent.PostID, "comment_count", 1); err != nil {
			if isNotFound(err) {
				return apperr.NotFound("Post not found")
			}
			return err
		}

		comment = models.Comment{
			UserID:          authorID,
			PostID:          parent.PostID,
			ParentCommentID: &parent.ID,
			Content:         content,
			Depth:           parent.Depth + 1,
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, apperr.From(err)
	}
	return &comment, nil
}

// ListTopLevel pages through the comments with no parent for one post.
// Nested replies never count toward the pagination total. When previewLimit
// is positive each returned comment carries up to that many of its
// highest-scoring direct children; anything deeper is paged explicitly via
// ListReplies.
func (r *CommentRepository) ListTopLevel(ctx context.Context, postID uint, params ListParams, previewLimit int) ([]models.Comment, models.Pagination, error) {
	params = params.normalized()

	var exists int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).Count(&exists).Error; err != nil {
		return nil, models.Pagination{}, apperr.Internal("failed to check post", err)
	}
	if exists == 0 {
		return nil, models.Pagination{}, apperr.NotFound("Post not found")
	}

	topLevel := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Comment{}).
			Where("post_id = ? AND parent_comment_id IS NULL", postID)
	}

	var total int64
	if err := topLevel().Count(&total).Error; err != nil {
		return nil, models.Pagination{}, apperr.Internal("failed to count comments", err)
	}

	var comments []models.Comment
	err := topLevel().Preload("User").
		Order(params.orderClause()).
		Limit(params.Limit).
		Offset(params.offset()).
		Find(&comments).Error
	if err != nil {
		return nil, models.Pagination{}, apperr.Internal("failed to list comments", err)
	}

	if previewLimit > 0 {
		for i := range comments {
			var children []models.Comment
			err := r.db.WithContext(ctx).Preload("User").
				Where("parent_comment_id = ?", comments[i].ID).
				Order("points DESC, id ASC").
				Limit(previewLimit).
				Find(&children).Error
			if err != nil {
				return nil, models.Pagination{}, apperr.Internal("failed to load replies", err)
			}
			comments[i].ChildComments = children
		}
	}

	return comments, pagination(params, total), nil
}

// ListReplies pages through the direct children of one comment.
func (r *CommentRepository) ListReplies(ctx context.Context, commentID uint, params ListParams) ([]models.Comment, models.Pagination, error) {
	params = params.normalized()

	var exists int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", commentID).Count(&exists).Error; err != nil {
		return nil, models.Pagination{}, apperr.Internal("failed to check comment", err)
	}
	if exists == 0 {
		return nil, models.Pagination{}, apperr.NotFound("Comment not found")
	}

	children := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Comment{}).
			Where("parent_comment_id = ?", commentID)
	}

	var total int64
	if err := children().Count(&total).Error; err != nil {
		return nil, models.Pagination{}, apperr.Internal("failed to count replies", err)
	}

	var comments []models.Comment
	err := children().Preload("User").
		Order(params.orderClause()).
		Limit(params.Limit).
		Offset(params.offset()).
		Find(&comments).Error
	if err != nil {
		return nil, models.Pagination{}, apperr.Internal("failed to list replies", err)
	}

	return comments, pagination(params, total), nil
}

// UpvotedByViewer batch-resolves the viewer's vote state for a set of
// comments.
func (r *CommentRepository) UpvotedByViewer(ctx context.Context, viewerID string, commentIDs []uint) (map[uint]bool, error) {
	upvoted := make(map[uint]bool)
	if viewerID == "" || len(commentIDs) == 0 {
		return upvoted, nil
	}

	var rows []models.CommentUpvote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id IN ?", viewerID, commentIDs).
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Internal("failed to load viewer votes", err)
	}
	for _, row := range rows {
		upvoted[row.CommentID] = true
	}
	return upvoted, nil
}
