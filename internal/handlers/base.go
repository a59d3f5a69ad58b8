package handlers

import (
	"net/http"
	"strconv"

	"emberlink/internal/apperr"
	"emberlink/internal/models"
	"emberlink/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// responder carries the bits every handler needs to speak the response
// envelope: success is {success, message, data?}, errors are
// {success, error, isFormError?}, and paginated payloads add {pagination}.
type responder struct {
	logger     *zap.Logger
	production bool
}

func (r responder) ok(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func (r responder) okPaginated(c *gin.Context, message string, data interface{}, p models.Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    message,
		"data":       data,
		"pagination": p,
	})
}

func (r responder) fail(c *gin.Context, err error) {
	ae := apperr.From(err)

	message := ae.Message
	if ae.Kind == apperr.KindInternal {
		r.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(ae),
		)
		if r.production {
			message = "Internal Server Error"
		} else {
			message = ae.Error()
		}
	}

	body := gin.H{"success": false, "error": message}
	if ae.FormError {
		body["isFormError"] = true
	}
	c.JSON(ae.Status(), body)
}

func (r responder) failValidation(c *gin.Context, err error) {
	r.fail(c, apperr.Validation(err.Error()))
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, apperr.Validation("invalid id")
	}
	return uint(id), nil
}

// parseListParams reads the shared pagination and sort query parameters,
// annotating with the viewer when a session is present.
func parseListParams(c *gin.Context, viewerID string) repository.ListParams {
	params := repository.ListParams{
		SortBy:   repository.SortByRecent,
		Order:    repository.OrderDesc,
		Page:     1,
		Limit:    10,
		ViewerID: viewerID,
	}
	if c.Query("sortBy") == string(repository.SortByPoints) {
		params.SortBy = repository.SortByPoints
	}
	if c.Query("order") == string(repository.OrderAsc) {
		params.Order = repository.OrderAsc
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		params.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		params.Limit = limit
	}
	return params
}
