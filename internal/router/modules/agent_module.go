package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/timbr/internal/interface/http"
)

type AgentModule struct {
	Handler *handlers.AgentHandler
}

func NewAgentModule(h *handlers.AgentHandler) *AgentModule {
	return &AgentModule{Handler: h}
}

func (m *AgentModule) Register(rg *gin.RouterGroup) {
	rg.GET("/agents/:id", m.Handler.Get)
}
