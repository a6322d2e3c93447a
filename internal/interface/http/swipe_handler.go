package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/timbr/internal/application"
	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/internal/interface/middleware"
	"github.com/oksasatya/timbr/pkg/response"
)

type SwipeHandler struct {
	Svc    *application.SwipeService
	Logger *logrus.Logger
}

func NewSwipeHandler(svc *application.SwipeService, logger *logrus.Logger) *SwipeHandler {
	return &SwipeHandler{Svc: svc, Logger: logger}
}

type swipeRequest struct {
	HouseID   string `json:"houseId" binding:"required"`
	Direction string `json:"direction" binding:"required,direction"`
	DwellMs   *int   `json:"dwellMs" binding:"omitempty,gte=0"`
}

// Create handles POST /api/swipes. Every rejection, including a repeat swipe
// on the same listing, is reported with the same 400 body.
func (h *SwipeHandler) Create(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req swipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, h.Logger, err, msgSwipeFailed)
		return
	}
	s, err := h.Svc.Record(c.Request.Context(), u.ID, application.RecordSwipeInput{
		HouseID:   req.HouseID,
		Direction: entity.Direction(req.Direction),
		DwellMs:   req.DwellMs,
	})
	switch {
	case errors.Is(err, application.ErrInvalidInput),
		errors.Is(err, application.ErrDuplicateSwipe),
		errors.Is(err, application.ErrHouseNotFound),
		errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusBadRequest, msgSwipeFailed)
		return
	case err != nil:
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"swipe": toSwipe(s)})
}
