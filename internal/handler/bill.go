package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/queue"
	"github.com/adityasharma9336/society-management-system/internal/repository"
	"github.com/adityasharma9336/society-management-system/internal/service"
	"github.com/adityasharma9336/society-management-system/internal/service/notify"
)

// BillHandler serves the billing endpoints: ad-hoc bill creation,
// monthly maintenance generation, listing and payment.
type BillHandler struct {
	Svc *service.BillingService
}

func NewBillHandler(svc *service.BillingService) *BillHandler {
	if svc == nil {
		panic("nil service passed to NewBillHandler")
	}
	return &BillHandler{Svc: svc}
}

var billCategories = map[string]bool{
	model.BillMaintenance: true,
	model.BillWater:       true,
	model.BillElectricity: true,
	model.BillOther:       true,
}

// Create handles POST /api/bills for admins, issuing a one-off bill
// to a single user. Ad-hoc bills carry no period, so they never
// collide with the monthly generator.
func (h *BillHandler) Create(c echo.Context) error {
	var body struct {
		UserID      uint64 `json:"user_id"`
		Title       string `json:"title"`
		Category    string `json:"category"`
		AmountCents uint32 `json:"amount_cents"`
		DueDate     string `json:"due_date"` // YYYY-MM-DD
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Title = strings.TrimSpace(body.Title)
	if body.UserID == 0 || body.Title == "" || body.AmountCents == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id, title and amount_cents are required"})
	}
	category := strings.ToUpper(strings.TrimSpace(body.Category))
	if category == "" {
		category = model.BillOther
	}
	if !billCategories[category] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown bill category"})
	}
	due, err := time.Parse("2006-01-02", body.DueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "due_date must be YYYY-MM-DD"})
	}
	b := model.Bill{
		UserID:      body.UserID,
		Title:       body.Title,
		Category:    category,
		AmountCents: body.AmountCents,
		DueDate:     due,
		Status:      model.BillPending,
	}
	if err := h.Svc.Bills.Create(c.Request().Context(), &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create bill failed"})
	}
	return c.JSON(http.StatusCreated, b)
}

// CreateBulk handles POST /api/bills/bulk for admins, issuing the
// same bill to a list of users, or to every resident when the list is
// empty.
func (h *BillHandler) CreateBulk(c echo.Context) error {
	var body struct {
		UserIDs     []uint64 `json:"user_ids"`
		Title       string   `json:"title"`
		Category    string   `json:"category"`
		AmountCents uint32   `json:"amount_cents"`
		DueDate     string   `json:"due_date"` // YYYY-MM-DD
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Title = strings.TrimSpace(body.Title)
	if body.Title == "" || body.AmountCents == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and amount_cents are required"})
	}
	category := strings.ToUpper(strings.TrimSpace(body.Category))
	if category == "" {
		category = model.BillOther
	}
	if !billCategories[category] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown bill category"})
	}
	due, err := time.Parse("2006-01-02", body.DueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "due_date must be YYYY-MM-DD"})
	}
	ctx := c.Request().Context()
	targets := body.UserIDs
	if len(targets) == 0 {
		targets, err = h.Svc.Users.ListIDsByRole(ctx, model.RoleResident)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load residents failed"})
		}
	}
	created := make([]model.Bill, 0, len(targets))
	for _, uid := range targets {
		b := model.Bill{
			UserID:      uid,
			Title:       body.Title,
			Category:    category,
			AmountCents: body.AmountCents,
			DueDate:     due,
			Status:      model.BillPending,
		}
		if err := h.Svc.Bills.Create(ctx, &b); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create bills failed"})
		}
		created = append(created, b)
	}
	return c.JSON(http.StatusCreated, echo.Map{"items": created, "created": len(created)})
}

// Generate handles POST /api/admin/bills/generate, creating the
// current month's maintenance bill for every resident not yet billed.
func (h *BillHandler) Generate(c echo.Context) error {
	created, skipped, err := h.Svc.GenerateMonthly(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate bills failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"created": created, "skipped": skipped})
}

// Pay handles POST /api/bills/:id/pay. A successful payment emits a
// best-effort bill.paid event for the notification consumer.
func (h *BillHandler) Pay(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bill id"})
	}
	var body struct {
		PaymentMethod *string `json:"paymentMethod"`
		TransactionID *string `json:"transactionId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	b, err := h.Svc.Pay(c.Request().Context(), id, uid, body.PaymentMethod, body.TransactionID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bill not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not your bill"})
		case errors.Is(err, repository.ErrInvalidState):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "bill already paid"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "pay bill failed"})
	}

	go func(b model.Bill) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = notify.Publish(ctx, queue.NotificationEvent{
			Kind:     queue.EventBillPaid,
			UserID:   b.UserID,
			EntityID: b.ID,
			Title:    b.Title,
			Detail:   fmt.Sprintf("paid %d cents", b.AmountCents),
		})
	}(b)

	return c.JSON(http.StatusOK, b)
}

// ListMine handles GET /api/bills/mine.
func (h *BillHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bills, err := h.Svc.Bills.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bills failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": bills})
}

// ListAll handles GET /api/bills for admins.
func (h *BillHandler) ListAll(c echo.Context) error {
	bills, err := h.Svc.Bills.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bills failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": bills})
}
