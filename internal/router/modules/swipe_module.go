package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/timbr/internal/interface/http"
	"github.com/oksasatya/timbr/internal/interface/middleware"
)

type SwipeModule struct {
	Handler  *handlers.SwipeHandler
	Resolver middleware.TokenResolver
	Limiter  *middleware.Limiter
}

func NewSwipeModule(h *handlers.SwipeHandler, resolver middleware.TokenResolver, l *middleware.Limiter) *SwipeModule {
	return &SwipeModule{Handler: h, Resolver: resolver, Limiter: l}
}

// Register limits swipes per user, so Auth has to run first.
func (m *SwipeModule) Register(rg *gin.RouterGroup) {
	rg.POST("/swipes",
		middleware.Auth(m.Resolver),
		m.Limiter.Limit("swipes", 120, time.Minute, middleware.KeyByUserID()),
		m.Handler.Create,
	)
}
