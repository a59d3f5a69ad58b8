package middleware

import (
	"net/http"
	"time"

	"emberlink/internal/models"
	"emberlink/internal/repository"
	"emberlink/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// CheckUserKey is the gin context key the resolved user is stored under.
const CheckUserKey = "user"

// SessionUserKey is the session value holding the logged-in user's id.
const SessionUserKey = "user_id"

// SessionGate resolves request identity from the session cookie. Handlers
// downstream only ever see a resolved *models.User; they never read cookies.
type SessionGate struct {
	users *repository.UserRepository
	cache *utils.TTLCache[string, *models.User]
}

func NewSessionGate(users *repository.UserRepository) (*SessionGate, error) {
	// Users are immutable in scope, so a short-lived cache cannot serve
	// stale identity.
	cache, err := utils.NewTTLCache[string, *models.User](1024, 30*time.Second)
	if err != nil {
		return nil, err
	}
	return &SessionGate{users: users, cache: cache}, nil
}

// LoadUser puts the session's user into the gin context when a valid session
// is present. It never fails the request; AuthRequired does the gating.
func (g *SessionGate) LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(SessionUserKey).(string)
		if ok && userID != "" {
			if user, hit := g.cache.Get(userID); hit {
				c.Set(CheckUserKey, user)
			} else if user, err := g.users.FindByID(c.Request.Context(), userID); err == nil {
				g.cache.Set(userID, user)
				c.Set(CheckUserKey, user)
			}
		}
		c.Next()
	}
}

// AuthRequired rejects requests that did not resolve to a user.
func (g *SessionGate) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the resolved user for this request, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(CheckUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
