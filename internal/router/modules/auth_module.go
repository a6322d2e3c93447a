package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/timbr/internal/interface/http"
	"github.com/oksasatya/timbr/internal/interface/middleware"
)

// AuthModule serves signup and login, each limited per client IP.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Limiter *middleware.Limiter
}

func NewAuthModule(h *handlers.AuthHandler, l *middleware.Limiter) *AuthModule {
	return &AuthModule{Handler: h, Limiter: l}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	perIP := m.Limiter.Limit("auth", 10, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/auth/signup", perIP, m.Handler.Signup)
	rg.POST("/auth/login", perIP, m.Handler.Login)
}
