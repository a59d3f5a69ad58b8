package handlers

import (
	"net/http"

	"emberlink/internal/middleware"
	"emberlink/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VoteHandler struct {
	responder
	votes *repository.VoteRepository
}

func NewVoteHandler(votes *repository.VoteRepository, logger *zap.Logger, production bool) *VoteHandler {
	return &VoteHandler{
		responder: responder{logger: logger, production: production},
		votes:     votes,
	}
}

type commentUpvoteRef struct {
	UserID string `json:"userId"`
}

// UpvotePost toggles the caller's vote on a post.
func (h *VoteHandler) UpvotePost(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	points, upvoted, err := h.votes.TogglePost(c.Request.Context(), id, user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, "Post updated", gin.H{
		"count":     points,
		"isUpvoted": upvoted,
	})
}

// UpvoteComment toggles the caller's vote on a comment. The commentUpvotes
// list carries the caller's ledger row when the toggle landed on "voted",
// matching what the comment tree renders elsewhere.
func (h *VoteHandler) UpvoteComment(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	points, upvoted, err := h.votes.ToggleComment(c.Request.Context(), id, user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	commentUpvotes := []commentUpvoteRef{}
	if upvoted {
		commentUpvotes = append(commentUpvotes, commentUpvoteRef{UserID: user.ID})
	}

	h.ok(c, http.StatusOK, "Comment updated", gin.H{
		"count":          points,
		"commentUpvotes": commentUpvotes,
	})
}
