package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/queue"
	"github.com/adityasharma9336/society-management-system/internal/repository"
	"github.com/adityasharma9336/society-management-system/internal/service/notify"
)

// NoticeHandler serves the notice board.
type NoticeHandler struct {
	Notices *repository.NoticeRepo
}

func NewNoticeHandler(notices *repository.NoticeRepo) *NoticeHandler {
	if notices == nil {
		panic("nil repository passed to NewNoticeHandler")
	}
	return &NoticeHandler{Notices: notices}
}

// Create handles POST /api/notices for admins. A posted notice emits
// a best-effort notice.posted event for the notification consumer.
func (h *NoticeHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Title = strings.TrimSpace(body.Title)
	if body.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	n := model.Notice{
		Title:    body.Title,
		Body:     strings.TrimSpace(body.Body),
		PostedBy: uid,
	}
	if err := h.Notices.Create(c.Request().Context(), &n); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create notice failed"})
	}

	go func(n model.Notice) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = notify.Publish(ctx, queue.NotificationEvent{
			Kind:     queue.EventNoticePosted,
			EntityID: n.ID,
			Title:    n.Title,
		})
	}(n)

	return c.JSON(http.StatusCreated, n)
}

// List handles GET /api/notices.
func (h *NoticeHandler) List(c echo.Context) error {
	notices, err := h.Notices.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load notices failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": notices})
}
