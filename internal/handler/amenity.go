package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/repository"
)

// AmenityHandler serves the amenity catalogue. Listing is open to any
// authenticated user; create and update are admin routes.
type AmenityHandler struct {
	Amenities *repository.AmenityRepo
}

func NewAmenityHandler(amenities *repository.AmenityRepo) *AmenityHandler {
	if amenities == nil {
		panic("nil repository passed to NewAmenityHandler")
	}
	return &AmenityHandler{Amenities: amenities}
}

type amenityReq struct {
	Name             string `json:"name"`
	Category         string `json:"category"`
	Capacity         uint32 `json:"capacity"`
	HourlyPriceCents uint32 `json:"hourly_price_cents"`
	IsActive         *bool  `json:"is_active"`
}

// List handles GET /api/amenities.
func (h *AmenityHandler) List(c echo.Context) error {
	amenities, err := h.Amenities.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load amenities failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": amenities})
}

// Create handles POST /api/amenities.
func (h *AmenityHandler) Create(c echo.Context) error {
	var body amenityReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	active := true
	if body.IsActive != nil {
		active = *body.IsActive
	}
	a := model.Amenity{
		Name:             body.Name,
		Category:         strings.TrimSpace(body.Category),
		Capacity:         body.Capacity,
		HourlyPriceCents: body.HourlyPriceCents,
		IsActive:         active,
	}
	if err := h.Amenities.Create(c.Request().Context(), &a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create amenity failed"})
	}
	return c.JSON(http.StatusCreated, a)
}

// Update handles PUT /api/amenities/:id. Omitted fields keep their
// stored values.
func (h *AmenityHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid amenity id"})
	}
	a, err := h.Amenities.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "amenity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load amenity failed"})
	}
	var body struct {
		Name             *string `json:"name"`
		Category         *string `json:"category"`
		Capacity         *uint32 `json:"capacity"`
		HourlyPriceCents *uint32 `json:"hourly_price_cents"`
		IsActive         *bool   `json:"is_active"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name != nil {
		a.Name = strings.TrimSpace(*body.Name)
	}
	if body.Category != nil {
		a.Category = strings.TrimSpace(*body.Category)
	}
	if body.Capacity != nil {
		a.Capacity = *body.Capacity
	}
	if body.HourlyPriceCents != nil {
		a.HourlyPriceCents = *body.HourlyPriceCents
	}
	if body.IsActive != nil {
		a.IsActive = *body.IsActive
	}
	if a.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if err := h.Amenities.Update(c.Request().Context(), &a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update amenity failed"})
	}
	return c.JSON(http.StatusOK, a)
}
