package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/timbr/internal/interface/middleware"
)

// DebugModule exposes the process counters (swipes, signups, cache hits,
// rate-limit rejections) as expvar JSON.
type DebugModule struct {
	Limiter *middleware.Limiter
}

func NewDebugModule(l *middleware.Limiter) *DebugModule { return &DebugModule{Limiter: l} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars",
		m.Limiter.Limit("debug", 120, time.Minute, middleware.KeyByIP()),
		gin.WrapH(expvar.Handler()),
	)
}
