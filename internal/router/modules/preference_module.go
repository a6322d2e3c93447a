package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/timbr/internal/interface/http"
	"github.com/oksasatya/timbr/internal/interface/middleware"
)

type PreferenceModule struct {
	Handler  *handlers.PreferenceHandler
	Resolver middleware.TokenResolver
}

func NewPreferenceModule(h *handlers.PreferenceHandler, resolver middleware.TokenResolver) *PreferenceModule {
	return &PreferenceModule{Handler: h, Resolver: resolver}
}

func (m *PreferenceModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/preferences")
	auth.Use(middleware.Auth(m.Resolver))
	{
		auth.GET("", m.Handler.Get)
		auth.PUT("", m.Handler.Put)
	}
}
