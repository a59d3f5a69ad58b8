package handlers

import (
	"net/http"

	"emberlink/internal/middleware"
	"emberlink/internal/models"
	"emberlink/internal/repository"
	"emberlink/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostHandler struct {
	responder
	posts *repository.PostRepository
}

func NewPostHandler(posts *repository.PostRepository, logger *zap.Logger, production bool) *PostHandler {
	return &PostHandler{
		responder: responder{logger: logger, production: production},
		posts:     posts,
	}
}

// createPostForm requires a title plus at least one of url/content; the
// struct-level rule lives in validation.go.
type createPostForm struct {
	Title   string `form:"title" binding:"required,min=3,max=100"`
	URL     string `form:"url" binding:"omitempty,url"`
	Content string `form:"content"`
}

func (h *PostHandler) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var form createPostForm
	if err := c.ShouldBind(&form); err != nil {
		h.failValidation(c, err)
		return
	}

	post, err := h.posts.Create(c.Request.Context(), user.ID, form.Title, form.URL, form.Content)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, "Post Created", gin.H{"postId": post.ID})
}

func (h *PostHandler) List(c *gin.Context) {
	viewerID := ""
	if user, ok := middleware.CurrentUser(c); ok {
		viewerID = user.ID
	}
	params := parseListParams(c, viewerID)
	filter := repository.PostFilter{
		Author: c.Query("author"),
		Site:   c.Query("site"),
	}

	posts, page, err := h.posts.List(c.Request.Context(), filter, params)
	if err != nil {
		h.fail(c, err)
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}
	upvoted, err := h.posts.UpvotedByViewer(c.Request.Context(), viewerID, postIDs)
	if err != nil {
		h.fail(c, err)
		return
	}

	items := make([]models.PostResponse, len(posts))
	for i, p := range posts {
		items[i] = models.NewPostResponse(p, p.User, upvoted[p.ID], "")
	}

	h.okPaginated(c, "Posts fetched", items, page)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	viewerID := ""
	if user, ok := middleware.CurrentUser(c); ok {
		viewerID = user.ID
	}

	post, err := h.posts.FindByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	upvoted, err := h.posts.UpvotedByViewer(c.Request.Context(), viewerID, []uint{post.ID})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, "Post fetched",
		models.NewPostResponse(*post, post.User, upvoted[post.ID], utils.RenderMarkdown(post.Content)))
}
