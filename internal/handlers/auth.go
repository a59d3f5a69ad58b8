package handlers

import (
	"net/http"

	"emberlink/internal/apperr"
	"emberlink/internal/middleware"
	"emberlink/internal/repository"
	"emberlink/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	responder
	users *repository.UserRepository
}

func NewAuthHandler(users *repository.UserRepository, logger *zap.Logger, production bool) *AuthHandler {
	return &AuthHandler{
		responder: responder{logger: logger, production: production},
		users:     users,
	}
}

type credentialsForm struct {
	Username string `form:"username" binding:"required,min=3,max=31,alphanum"`
	Password string `form:"password" binding:"required,min=3,max=255"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		h.failValidation(c, err)
		return
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		h.fail(c, apperr.Internal("failed to hash password", err))
		return
	}

	user, err := h.users.Create(c.Request.Context(), form.Username, hash)
	if err != nil {
		h.fail(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		h.fail(c, apperr.Internal("failed to save session", err))
		return
	}

	h.ok(c, http.StatusCreated, "User Created", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		h.failValidation(c, err)
		return
	}

	user, err := h.users.FindByUsername(c.Request.Context(), form.Username)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			h.fail(c, apperr.Unauthorized("Incorrect username"))
			return
		}
		h.fail(c, err)
		return
	}

	if !utils.CheckPasswordHash(form.Password, user.Password) {
		h.fail(c, apperr.Unauthorized("Incorrect password"))
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		h.fail(c, apperr.Internal("failed to save session", err))
		return
	}

	h.ok(c, http.StatusOK, "Logged in", nil)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) User(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.fail(c, apperr.Unauthorized("Unauthorized"))
		return
	}
	h.ok(c, http.StatusOK, "User fetched", gin.H{"username": user.Username})
}
