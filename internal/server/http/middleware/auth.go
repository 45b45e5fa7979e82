package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

const (
	// ActorContextKey is a gin context key for the authenticated actor.
	ActorContextKey = "actor"
	authCookieName  = "storefront_token"
)

// TokenParser resolves a session token into the acting user.
type TokenParser interface {
	ParseToken(token string) (model.Actor, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, "Login first to handle this resource")
			return
		}

		actor, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				abort(c, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		c.Set(ActorContextKey, actor)
		c.Next()
	}
}

// AdminRequired rejects actors without the admin role. It must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "Login first to handle this resource")
			return
		}
		if !actor.IsAdmin() {
			abort(c, http.StatusForbidden, "Role is not allowed to access this resource")
			return
		}
		c.Next()
	}
}

// CurrentActor returns the actor stored by AuthRequired.
func CurrentActor(c *gin.Context) (model.Actor, bool) {
	val, ok := c.Get(ActorContextKey)
	if !ok {
		return model.Actor{}, false
	}
	actor, ok := val.(model.Actor)
	return actor, ok
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.Error(message))
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
