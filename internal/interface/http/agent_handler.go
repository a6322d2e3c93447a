package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/timbr/internal/application"
	"github.com/oksasatya/timbr/pkg/response"
)

type AgentHandler struct {
	Svc    *application.AgentService
	Logger *logrus.Logger
}

func NewAgentHandler(svc *application.AgentService, logger *logrus.Logger) *AgentHandler {
	return &AgentHandler{Svc: svc, Logger: logger}
}

// Get handles GET /api/agents/:id.
func (h *AgentHandler) Get(c *gin.Context) {
	d, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"agent": toAgentDetail(d)})
}
