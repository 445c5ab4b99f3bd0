package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/repository"
)

// ComplaintHandler serves the resident complaint endpoints.
type ComplaintHandler struct {
	Complaints *repository.ComplaintRepo
}

func NewComplaintHandler(complaints *repository.ComplaintRepo) *ComplaintHandler {
	if complaints == nil {
		panic("nil repository passed to NewComplaintHandler")
	}
	return &ComplaintHandler{Complaints: complaints}
}

// Create handles POST /api/complaints.
func (h *ComplaintHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Title = strings.TrimSpace(body.Title)
	if body.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	cm := model.Complaint{
		UserID:      uid,
		Title:       body.Title,
		Description: strings.TrimSpace(body.Description),
		Category:    strings.TrimSpace(body.Category),
		Status:      model.ComplaintOpen,
	}
	if err := h.Complaints.Create(c.Request().Context(), &cm); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create complaint failed"})
	}
	return c.JSON(http.StatusCreated, cm)
}

// SetStatus handles PUT /api/complaints/:id/status for admins.
func (h *ComplaintHandler) SetStatus(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid complaint id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status := strings.ToUpper(strings.TrimSpace(body.Status))
	switch status {
	case model.ComplaintOpen, model.ComplaintInProgress, model.ComplaintResolved:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be OPEN, IN_PROGRESS or RESOLVED"})
	}
	if err := h.Complaints.UpdateStatus(c.Request().Context(), id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "complaint not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update complaint failed"})
	}
	cm, err := h.Complaints.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load complaint failed"})
	}
	return c.JSON(http.StatusOK, cm)
}

// ListMine handles GET /api/complaints/mine.
func (h *ComplaintHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	complaints, err := h.Complaints.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load complaints failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": complaints})
}

// ListAll handles GET /api/complaints for admins.
func (h *ComplaintHandler) ListAll(c echo.Context) error {
	complaints, err := h.Complaints.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load complaints failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": complaints})
}
