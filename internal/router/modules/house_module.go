package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/timbr/internal/interface/http"
	"github.com/oksasatya/timbr/internal/interface/middleware"
)

// HouseModule exposes the public listing feed plus owner-only listing management.
type HouseModule struct {
	Handler  *handlers.HouseHandler
	Resolver middleware.TokenResolver
}

func NewHouseModule(h *handlers.HouseHandler, resolver middleware.TokenResolver) *HouseModule {
	return &HouseModule{Handler: h, Resolver: resolver}
}

func (m *HouseModule) Register(rg *gin.RouterGroup) {
	rg.GET("/houses", m.Handler.List)
	rg.GET("/houses/search", m.Handler.Search)
	rg.GET("/houses/:id", m.Handler.Get)

	auth := rg.Group("/houses")
	auth.Use(middleware.Auth(m.Resolver))
	{
		auth.POST("", m.Handler.Create)
		auth.PATCH("/:id", m.Handler.Update)
		auth.POST("/:id/images", m.Handler.UploadImage)
	}
}
