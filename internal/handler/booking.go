package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/repository"
	"github.com/adityasharma9336/society-management-system/internal/service"
)

// BookingHandler serves the amenity booking endpoints.
type BookingHandler struct {
	Svc *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Svc: svc}
}

// Request handles POST /api/amenities/book. The slot is checked against
// every active booking for the amenity and date; an overlap is a 400
// with an explanatory message.
func (h *BookingHandler) Request(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		AmenityID uint64 `json:"amenityId"`
		Date      string `json:"date"`
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	b, err := h.Svc.Request(c.Request().Context(), uid, body.AmenityID,
		strings.TrimSpace(body.Date), strings.TrimSpace(body.StartTime), strings.TrimSpace(body.EndTime))
	if err != nil {
		if wrote, werr := badRequestIfInvalid(c, err); wrote {
			return werr
		}
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "amenity not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot already booked or pending approval"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	return c.JSON(http.StatusCreated, b)
}

// Cancel handles PUT /api/bookings/:id/cancel. Residents may only
// cancel their own bookings.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if err := h.Svc.Bookings.CancelForUser(c.Request().Context(), id, uid); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel booking failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled"})
}

// SetStatus handles PUT /api/bookings/:id/status for admins, moving a
// booking to APPROVED or REJECTED.
func (h *BookingHandler) SetStatus(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status := strings.ToUpper(strings.TrimSpace(body.Status))
	if status != model.BookingApproved && status != model.BookingRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be APPROVED or REJECTED"})
	}
	if err := h.Svc.Bookings.UpdateStatus(c.Request().Context(), id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
	}
	b, err := h.Svc.Bookings.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	return c.JSON(http.StatusOK, b)
}

// ListMine handles GET /api/bookings/mine.
func (h *BookingHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookings, err := h.Svc.Bookings.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": bookings})
}

// ListAll handles GET /api/bookings for admins.
func (h *BookingHandler) ListAll(c echo.Context) error {
	bookings, err := h.Svc.Bookings.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": bookings})
}
