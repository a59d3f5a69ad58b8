package repository

import (
	"context"

	"emberlink/internal/apperr"
	"emberlink/internal/models"

	"gorm.io/gorm"
)

// VoteRepository is the toggle engine for the two upvote ledgers. A toggle
// either inserts a ledger row and adds one point, or removes the row and
// takes one point back; the two effects always commit together.
type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// TogglePost flips the calling user's vote on a post and returns the new
// points total plus the resulting vote state. The subject row is locked for
// the whole transaction so two concurrent toggles on the same pair serialize
// instead of double-counting.
func (r *VoteRepository) TogglePost(ctx context.Context, postID uint, userID string) (int, bool, error) {
	var (
		points  int
		upvoted bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := forUpdate(tx).First(&post, postID).Error; err != nil {
			if isNotFound(err) {
				return apperr.NotFound("Post not found")
			}
			return err
		}

		var existing models.PostUpvote
		lookupErr := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			First(&existing).Error

		delta := 1
		upvoted = true
		switch {
		case lookupErr == nil:
			delta = -1
			upvoted = false
		case !isNotFound(lookupErr):
			return lookupErr
		}

		newPoints, err := incrementCounter(tx, &models.Post{}, postID, "points", delta)
		if err != nil {
			if isNotFound(err) {
				return apperr.NotFound("Post not found")
			}
			return err
		}
		points = newPoints

		if upvoted {
			return tx.Create(&models.PostUpvote{PostID: postID, UserID: userID}).Error
		}
		return tx.Delete(&models.PostUpvote{}, existing.ID).Error
	})
	if err != nil {
		return 0, false, apperr.From(err)
	}
	return points, upvoted, nil
}

// ToggleComment mirrors TogglePost for the comment ledger.
func (r *VoteRepository) ToggleComment(ctx context.Context, commentID uint, userID string) (int, bool, error) {
	var (
		points  int
		upvoted bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := forUpdate(tx).First(&comment, commentID).Error; err != nil {
			if isNotFound(err) {
				return apperr.NotFound("Comment not found")
			}
			return err
		}

		var existing models.CommentUpvote
		lookupErr := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).
			First(&existing).Error

		delta := 1
		upvoted = true
		switch {
		case lookupErr == nil:
			delta = -1
			upvoted = false
		case !isNotFound(lookupErr):
			return lookupErr
		}

		newPoints, err := incrementCounter(tx, &models.Comment{}, commentID, "points", delta)
		if err != nil {
			if isNotFound(err) {
				return apperr.NotFound("Comment not found")
			}
			return err
		}
		points = newPoints

		if upvoted {
			return tx.Create(&models.CommentUpvote{CommentID: commentID, UserID: userID}).Error
		}
		return tx.Delete(&models.CommentUpvote{}, existing.ID).Error
	})
	if err != nil {
		return 0, false, apperr.From(err)
	}
	return points, upvoted, nil
}
