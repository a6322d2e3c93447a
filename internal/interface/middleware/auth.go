package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/timbr/internal/application"
	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/pkg/response"
)

const (
	CtxUserKey   = "user"
	CtxUserIDKey = "userID"
)

// TokenResolver turns a bearer token into the user it was issued to.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*entity.User, error)
}

// Auth requires "Authorization: Bearer <token>".
// Missing header or unknown user is 401; a token that fails verification is 403.
func Auth(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		u, err := resolver.ResolveToken(c.Request.Context(), strings.TrimSpace(token))
		switch {
		case errors.Is(err, application.ErrTokenInvalid):
			response.Error(c, http.StatusForbidden, "Forbidden")
			return
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		case err != nil:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}

// CurrentUser returns the user resolved by Auth.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok && u != nil
}
