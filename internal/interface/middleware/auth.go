package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-cms/internal/application"
	"github.com/oksasatya/go-portfolio-cms/pkg/helpers"
	"github.com/oksasatya/go-portfolio-cms/pkg/response"
)

// Gin context keys set by Auth.
const (
	CtxUserIDKey    = "userID"
	CtxSessionIDKey = "sessionID"
	CtxUserEmailKey = "userEmail"
	CtxUserNameKey  = "userName"
)

// Authorizer resolves an access token to a live session.
type Authorizer interface {
	Authorize(ctx context.Context, accessToken string) (*application.Session, error)
}

// Auth validates the access token cookie and ensures its session still
// exists. It sets userID, sessionID, userEmail and userName in the Gin
// context on success.
func Auth(auth Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.AccessCookie)
		if err != nil || token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		sess, err := auth.Authorize(c.Request.Context(), token)
		switch {
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		case errors.Is(err, application.ErrSessionNotFound):
			response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
			c.Abort()
			return
		case err != nil:
			response.Error[any](c, http.StatusServiceUnavailable, "session store unavailable", nil)
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, sess.UserID)
		c.Set(CtxSessionIDKey, sess.ID)
		c.Set(CtxUserEmailKey, sess.Email)
		c.Set(CtxUserNameKey, sess.Name)
		c.Next()
	}
}
