package handlers

import (
	"net/http"
	"strconv"

	"emberlink/internal/middleware"
	"emberlink/internal/models"
	"emberlink/internal/repository"
	"emberlink/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommentHandler struct {
	responder
	comments *repository.CommentRepository

	// How many direct children ride along with each top-level comment when
	// the client asks for expansion.
	previewLimit int
}

func NewCommentHandler(comments *repository.CommentRepository, previewLimit int, logger *zap.Logger, production bool) *CommentHandler {
	return &CommentHandler{
		responder:    responder{logger: logger, production: production},
		comments:     comments,
		previewLimit: previewLimit,
	}
}

type createCommentForm struct {
	Content string `form:"content" binding:"required,min=3"`
}

// CreateOnPost handles a top-level comment on /posts/:id/comment.
func (h *CommentHandler) CreateOnPost(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var form createCommentForm
	if err := c.ShouldBind(&form); err != nil {
		h.failValidation(c, err)
		return
	}

	comment, err := h.comments.CreateTopLevel(c.Request.Context(), id, user.ID, form.Content)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, "Comment Created",
		models.NewCommentResponse(*comment, *user, false, utils.RenderMarkdown(comment.Content)))
}

// Reply handles a nested reply on /comments/:id.
func (h *CommentHandler) Reply(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var form createCommentForm
	if err := c.ShouldBind(&form); err != nil {
		h.failValidation(c, err)
		return
	}

	comment, err := h.comments.CreateReply(c.Request.Context(), id, user.ID, form.Content)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, "Comment Created",
		models.NewCommentResponse(*comment, *user, false, utils.RenderMarkdown(comment.Content)))
}

// ListForPost pages the top-level comments of a post, optionally expanding a
// short preview of each comment's replies.
func (h *CommentHandler) ListForPost(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	viewerID := ""
	if user, ok := middleware.CurrentUser(c); ok {
		viewerID = user.ID
	}
	params := parseListParams(c, viewerID)

	previewLimit := 0
	if includeChildren, _ := strconv.ParseBool(c.Query("includeChildren")); includeChildren {
		previewLimit = h.previewLimit
	}

	comments, page, err := h.comments.ListTopLevel(c.Request.Context(), id, params, previewLimit)
	if err != nil {
		h.fail(c, err)
		return
	}

	items, err := h.buildCommentResponses(c, viewerID, comments)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.okPaginated(c, "Comments fetched", items, page)
}

// ListReplies pages the direct children of one comment; this is how clients
// walk deeper than the eager preview.
func (h *CommentHandler) ListReplies(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	viewerID := ""
	if user, ok := middleware.CurrentUser(c); ok {
		viewerID = user.ID
	}
	params := parseListParams(c, viewerID)

	comments, page, err := h.comments.ListReplies(c.Request.Context(), id, params)
	if err != nil {
		h.fail(c, err)
		return
	}

	items, err := h.buildCommentResponses(c, viewerID, comments)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.okPaginated(c, "Comments fetched", items, page)
}

// buildCommentResponses resolves viewer vote state for the comments and
// their expanded children in one batch, then assembles the DTO tree.
func (h *CommentHandler) buildCommentResponses(c *gin.Context, viewerID string, comments []models.Comment) ([]models.CommentResponse, error) {
	ids := make([]uint, 0, len(comments))
	for _, comment := range comments {
		ids = append(ids, comment.ID)
		for _, child := range comment.ChildComments {
			ids = append(ids, child.ID)
		}
	}

	upvoted, err := h.comments.UpvotedByViewer(c.Request.Context(), viewerID, ids)
	if err != nil {
		return nil, err
	}

	items := make([]models.CommentResponse, len(comments))
	for i, comment := range comments {
		item := models.NewCommentResponse(comment, comment.User, upvoted[comment.ID], utils.RenderMarkdown(comment.Content))
		for _, child := range comment.ChildComments {
			item.ChildComments = append(item.ChildComments,
				models.NewCommentResponse(child, child.User, upvoted[child.ID], utils.RenderMarkdown(child.Content)))
		}
		items[i] = item
	}
	return items, nil
}
