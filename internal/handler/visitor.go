package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/queue"
	"github.com/adityasharma9336/society-management-system/internal/repository"
	"github.com/adityasharma9336/society-management-system/internal/service"
	"github.com/adityasharma9336/society-management-system/internal/service/notify"
)

// statsCacheKey and statsCacheTTL control the Redis cache in front of
// the visitor stats aggregate. The stats query scans the whole
// visitors table, and the gate dashboard polls it frequently.
const (
	statsCacheKey = "visitors:stats"
	statsCacheTTL = 30 * time.Second
)

// VisitorHandler serves the gate-pass endpoints. Rdb may be nil, in
// which case stats are computed on every request.
type VisitorHandler struct {
	Svc *service.VisitorService
	Rdb *redis.Client
}

func NewVisitorHandler(svc *service.VisitorService, rdb *redis.Client) *VisitorHandler {
	if svc == nil {
		panic("nil service passed to NewVisitorHandler")
	}
	return &VisitorHandler{Svc: svc, Rdb: rdb}
}

type visitorResp struct {
	ID         uint64     `json:"id"`
	HostID     uint64     `json:"host_id"`
	Name       string     `json:"name"`
	Phone      *string    `json:"phone,omitempty"`
	Purpose    *string    `json:"purpose,omitempty"`
	Category   string     `json:"category"`
	Status     string     `json:"status"`
	PassCode   string     `json:"pass_code"`
	ExpectedAt time.Time  `json:"expected_at"`
	ExitTime   *time.Time `json:"exit_time,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toVisitorResp(v model.Visitor) visitorResp {
	return visitorResp{
		ID: v.ID, HostID: v.HostID, Name: v.Name, Phone: v.Phone, Purpose: v.Purpose,
		Category: v.Category, Status: v.Status, PassCode: v.PassCode,
		ExpectedAt: v.ExpectedAt, ExitTime: v.ExitTime, CreatedAt: v.CreatedAt,
	}
}

// Register handles POST /api/visitors. Residents register their own
// guests (status PENDING); staff may register on behalf of a resident
// via residentId and the visitor starts APPROVED.
func (h *VisitorHandler) Register(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Name         string  `json:"name"`
		Phone        *string `json:"phone"`
		Purpose      *string `json:"purpose"`
		Type         string  `json:"type"`
		ResidentID   uint64  `json:"residentId"`
		ExpectedDate string  `json:"expectedDate"` // RFC3339, optional
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	byStaff := isStaff(c)
	host := uid
	if byStaff && body.ResidentID != 0 {
		host = body.ResidentID
	}
	var expected time.Time
	if body.ExpectedDate != "" {
		t, err := time.Parse(time.RFC3339, body.ExpectedDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "expectedDate must be RFC3339"})
		}
		expected = t.UTC()
	}

	v, err := h.Svc.Register(c.Request().Context(), service.RegisterInput{
		HostID:     host,
		Name:       body.Name,
		Phone:      body.Phone,
		Purpose:    body.Purpose,
		Category:   body.Type,
		ExpectedAt: expected,
		ByStaff:    byStaff,
	})
	if err != nil {
		if wrote, werr := badRequestIfInvalid(c, err); wrote {
			return werr
		}
		if errors.Is(err, service.ErrCodeSpaceExhausted) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "could not allocate pass code"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "register visitor failed"})
	}
	h.invalidateStats(c.Request().Context())
	return c.JSON(http.StatusCreated, toVisitorResp(v))
}

// Decide handles PUT /api/visitors/:id/status with body
// {"status": "APPROVED"|"DENIED"}. EXPECTED is accepted as a synonym
// of APPROVED. Re-deciding an already-decided visitor overwrites the
// earlier decision.
func (h *VisitorHandler) Decide(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid visitor id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	var approve bool
	switch strings.ToUpper(strings.TrimSpace(body.Status)) {
	case model.VisitorApproved, "EXPECTED":
		approve = true
	case model.VisitorDenied:
		approve = false
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be APPROVED or DENIED"})
	}

	v, err := h.Svc.Decide(c.Request().Context(), id, approve)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "visitor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update visitor failed"})
	}
	h.invalidateStats(c.Request().Context())

	// Best effort: tell the host their guest was decided on.
	go func(v model.Visitor) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = notify.Publish(ctx, queue.NotificationEvent{
			Kind:     queue.EventVisitorDecided,
			UserID:   v.HostID,
			EntityID: v.ID,
			Title:    v.Name,
			Detail:   "visitor " + strings.ToLower(v.Status),
		})
	}(v)

	return c.JSON(http.StatusOK, toVisitorResp(v))
}

// CheckIn handles PUT /api/visitors/:id/checkin.
func (h *VisitorHandler) CheckIn(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid visitor id"})
	}
	v, err := h.Svc.CheckIn(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "visitor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "check-in failed"})
	}
	h.invalidateStats(c.Request().Context())
	return c.JSON(http.StatusOK, toVisitorResp(v))
}

// CheckOut handles PUT /api/visitors/:id/exit.
func (h *VisitorHandler) CheckOut(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid visitor id"})
	}
	v, err := h.Svc.CheckOut(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "visitor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "check-out failed"})
	}
	h.invalidateStats(c.Request().Context())
	return c.JSON(http.StatusOK, toVisitorResp(v))
}

// ListMine handles GET /api/visitors/mine.
func (h *VisitorHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	visitors, err := h.Svc.Visitors.ListByHost(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load visitors failed"})
	}
	items := make([]visitorResp, 0, len(visitors))
	for _, v := range visitors {
		items = append(items, toVisitorResp(v))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListAll handles GET /api/visitors for staff.
func (h *VisitorHandler) ListAll(c echo.Context) error {
	visitors, err := h.Svc.Visitors.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load visitors failed"})
	}
	items := make([]visitorResp, 0, len(visitors))
	for _, v := range visitors {
		items = append(items, toVisitorResp(v))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Stats handles GET /api/visitors/stats, serving from the Redis cache
// when a fresh entry exists.
func (h *VisitorHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	if h.Rdb != nil {
		if raw, err := h.Rdb.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var s model.VisitorStats
			if json.Unmarshal(raw, &s) == nil {
				return c.JSON(http.StatusOK, s)
			}
		}
	}
	s, err := h.Svc.Stats(ctx, time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load stats failed"})
	}
	if h.Rdb != nil {
		if raw, err := json.Marshal(s); err == nil {
			_ = h.Rdb.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err()
		}
	}
	return c.JSON(http.StatusOK, s)
}

// invalidateStats drops the cached aggregate after any write that
// could change it.
func (h *VisitorHandler) invalidateStats(ctx context.Context) {
	if h.Rdb != nil {
		_ = h.Rdb.Del(ctx, statsCacheKey).Err()
	}
}
