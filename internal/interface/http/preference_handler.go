package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/timbr/internal/application"
	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/internal/interface/middleware"
	"github.com/oksasatya/timbr/pkg/response"
)

type PreferenceHandler struct {
	Svc    *application.PreferenceService
	Logger *logrus.Logger
}

func NewPreferenceHandler(svc *application.PreferenceService, logger *logrus.Logger) *PreferenceHandler {
	return &PreferenceHandler{Svc: svc, Logger: logger}
}

// preferenceRequest mirrors PreferencePatch; absent keys stay nil.
type preferenceRequest struct {
	MinPrice        *int      `json:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice        *int      `json:"maxPrice" binding:"omitempty,gte=0"`
	MinBeds         *int      `json:"minBeds" binding:"omitempty,gte=0"`
	MaxBeds         *int      `json:"maxBeds" binding:"omitempty,gte=0"`
	MinBaths        *float64  `json:"minBaths" binding:"omitempty,gte=0"`
	MaxBaths        *float64  `json:"maxBaths" binding:"omitempty,gte=0"`
	PropertyTypes   *[]string `json:"propertyTypes" binding:"omitempty,dive,propertytype"`
	Neighborhoods   *[]string `json:"neighborhoods"`
	MinSqft         *int      `json:"minSqft" binding:"omitempty,gte=0"`
	MaxSqft         *int      `json:"maxSqft" binding:"omitempty,gte=0"`
	MinLotSqft      *int      `json:"minLotSqft" binding:"omitempty,gte=0"`
	MaxLotSqft      *int      `json:"maxLotSqft" binding:"omitempty,gte=0"`
	YearBuiltMin    *int      `json:"yearBuiltMin"`
	YearBuiltMax    *int      `json:"yearBuiltMax"`
	HOAMaxMonthly   *int      `json:"hoaMaxMonthly" binding:"omitempty,gte=0"`
	HasGarage       *bool     `json:"hasGarage"`
	HasPool         *bool     `json:"hasPool"`
	AllowFixerUpper *bool     `json:"allowFixerUpper"`
}

func (r preferenceRequest) patch() entity.PreferencePatch {
	return entity.PreferencePatch{
		MinPrice:        r.MinPrice,
		MaxPrice:        r.MaxPrice,
		MinBeds:         r.MinBeds,
		MaxBeds:         r.MaxBeds,
		MinBaths:        r.MinBaths,
		MaxBaths:        r.MaxBaths,
		PropertyTypes:   r.PropertyTypes,
		Neighborhoods:   r.Neighborhoods,
		MinSqft:         r.MinSqft,
		MaxSqft:         r.MaxSqft,
		MinLotSqft:      r.MinLotSqft,
		MaxLotSqft:      r.MaxLotSqft,
		YearBuiltMin:    r.YearBuiltMin,
		YearBuiltMax:    r.YearBuiltMax,
		HOAMaxMonthly:   r.HOAMaxMonthly,
		HasGarage:       r.HasGarage,
		HasPool:         r.HasPool,
		AllowFixerUpper: r.AllowFixerUpper,
	}
}

func (h *PreferenceHandler) Get(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), u.ID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"preferences": toPreference(p)})
}

func (h *PreferenceHandler) Put(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req preferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, h.Logger, err, msgInvalidInput)
		return
	}
	p, err := h.Svc.Put(c.Request.Context(), u.ID, req.patch())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"preferences": toPreference(p)})
}
