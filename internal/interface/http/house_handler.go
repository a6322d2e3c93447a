package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/timbr/internal/application"
	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/internal/interface/middleware"
	"github.com/oksasatya/timbr/pkg/response"
)

type HouseHandler struct {
	Svc    *application.HouseService
	Logger *logrus.Logger
}

func NewHouseHandler(svc *application.HouseService, logger *logrus.Logger) *HouseHandler {
	return &HouseHandler{Svc: svc, Logger: logger}
}

// intQuery reads an optional integer query parameter.
func intQuery(c *gin.Context, key string) (*int, bool) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &v, true
}

func parseListQuery(c *gin.Context) (application.ListQuery, bool) {
	var q application.ListQuery
	targets := []struct {
		key string
		dst **int
	}{
		{"take", &q.Take},
		{"skip", &q.Skip},
		{"minPrice", &q.MinPrice},
		{"maxPrice", &q.MaxPrice},
		{"minBeds", &q.MinBeds},
		{"maxBeds", &q.MaxBeds},
	}
	for _, t := range targets {
		v, ok := intQuery(c, t.key)
		if !ok {
			return q, false
		}
		*t.dst = v
	}
	if pt := c.Query("propertyType"); pt != "" {
		p := entity.PropertyType(pt)
		q.PropertyType = &p
	}
	return q, true
}

// List handles GET /api/houses.
func (h *HouseHandler) List(c *gin.Context) {
	q, ok := parseListQuery(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	houses, err := h.Svc.List(c.Request.Context(), q)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"houses": toHouses(houses)})
}

// Search handles GET /api/houses/search.
func (h *HouseHandler) Search(c *gin.Context) {
	size, ok := intQuery(c, "size")
	if !ok {
		response.Error(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	n := 0
	if size != nil {
		n = *size
	}
	houses, err := h.Svc.Search(c.Request.Context(), c.Query("q"), n)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"houses": toHouses(houses)})
}

func (h *HouseHandler) Get(c *gin.Context) {
	house, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"house": toHouse(*house)})
}

type imageRequest struct {
	URL     string  `json:"url" binding:"required,url"`
	Caption *string `json:"caption"`
}

type createHouseRequest struct {
	Title        string         `json:"title" binding:"required"`
	Description  string         `json:"description"`
	Price        int            `json:"price" binding:"gte=0"`
	Bedrooms     int            `json:"bedrooms" binding:"gte=0"`
	Bathrooms    float64        `json:"bathrooms" binding:"gte=0"`
	Sqft         int            `json:"sqft" binding:"gte=0"`
	LotSqft      *int           `json:"lotSqft" binding:"omitempty,gte=0"`
	YearBuilt    *int           `json:"yearBuilt"`
	PropertyType string         `json:"propertyType" binding:"required,propertytype"`
	AddressLine1 string         `json:"addressLine1" binding:"required"`
	City         string         `json:"city" binding:"required"`
	State        string         `json:"state" binding:"required"`
	PostalCode   string         `json:"postalCode" binding:"required"`
	Country      string         `json:"country"`
	Latitude     *float64       `json:"latitude" binding:"omitempty,latitude"`
	Longitude    *float64       `json:"longitude" binding:"omitempty,longitude"`
	HOAMonthly   *int           `json:"hoaMonthly" binding:"omitempty,gte=0"`
	HasGarage    bool           `json:"hasGarage"`
	HasPool      bool           `json:"hasPool"`
	Images       []imageRequest `json:"images" binding:"omitempty,max=20,dive"`
}

// Create handles POST /api/houses for agents and sellers.
func (h *HouseHandler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req createHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, h.Logger, err, msgInvalidInput)
		return
	}
	in := application.CreateHouseInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Sqft:         req.Sqft,
		LotSqft:      req.LotSqft,
		YearBuilt:    req.YearBuilt,
		PropertyType: entity.PropertyType(req.PropertyType),
		AddressLine1: req.AddressLine1,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		HOAMonthly:   req.HOAMonthly,
		HasGarage:    req.HasGarage,
		HasPool:      req.HasPool,
	}
	for _, img := range req.Images {
		in.Images = append(in.Images, application.ImageInput{URL: img.URL, Caption: img.Caption})
	}
	house, err := h.Svc.Create(c.Request.Context(), actor, in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"house": toHouse(*house)})
}

type updateHouseRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	Price       *int    `json:"price" binding:"omitempty,gte=0"`
	IsActive    *bool   `json:"isActive"`
}

// Update handles PATCH /api/houses/:id for the owning agent or seller.
func (h *HouseHandler) Update(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req updateHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, h.Logger, err, msgInvalidInput)
		return
	}
	house, err := h.Svc.Update(c.Request.Context(), actor, c.Param("id"), entity.HousePatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    req.IsActive,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"house": toHouse(*house)})
}

const maxImageBytes = 10 << 20

// UploadImage handles POST /api/houses/:id/images (multipart field "file").
func (h *HouseHandler) UploadImage(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	fh, err := c.FormFile("file")
	if err != nil || fh.Size > maxImageBytes {
		response.Error(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	img, err := h.Svc.UploadImage(c.Request.Context(), actor, c.Param("id"), fh.Filename, contentType, f)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"image": toImage(*img)})
}
