package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/repository"
	"github.com/adityasharma9336/society-management-system/internal/service"
	"github.com/adityasharma9336/society-management-system/internal/testutil"
)

// newJSONCtx builds an echo context carrying a JSON body and the
// identity claims the JWT middleware would have set.
func newJSONCtx(e *echo.Echo, method, target, body string, userID uint64, role string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	c.Set("role", role)
	return c, rec
}

func errBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var m map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("response %q is not a JSON object: %v", rec.Body.String(), err)
	}
	return m["error"]
}

func TestBookingRequestOverlapReturns400(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	resident := testutil.SeedUser(t, db, "resident@example.com", model.RoleResident)
	amenities := repository.NewAmenityRepo(db)
	court := model.Amenity{Name: "Tennis Court", Category: "SPORTS", IsActive: true}
	if err := amenities.Create(ctx, &court); err != nil {
		t.Fatalf("create amenity: %v", err)
	}
	h := NewBookingHandler(service.NewBookingService(repository.NewBookingRepo(db), amenities))

	e := echo.New()
	body := `{"amenityId": ` + strconv.FormatUint(court.ID, 10) + `, "date": "2026-09-10", "startTime": "14:00", "endTime": "15:00"}`

	c, rec := newJSONCtx(e, http.MethodPost, "/api/amenities/book", body, resident, model.RoleResident)
	if err := h.Request(c); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("first request status = %d, want 201", rec.Code)
	}

	c, rec = newJSONCtx(e, http.MethodPost, "/api/amenities/book", body, resident, model.RoleResident)
	if err := h.Request(c); err != nil {
		t.Fatalf("second request: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("overlap status = %d, want 400", rec.Code)
	}
	if got := errBody(t, rec); got != "slot already booked or pending approval" {
		t.Errorf("overlap message = %q", got)
	}
}

func TestVisitorRegisterBindsWireKeys(t *testing.T) {
	db := testutil.OpenDB(t)

	guard := testutil.SeedUser(t, db, "guard@example.com", model.RoleGuard)
	host := testutil.SeedUser(t, db, "host@example.com", model.RoleResident)
	h := NewVisitorHandler(service.NewVisitorService(repository.NewVisitorRepo(db)), nil)

	e := echo.New()
	body := `{"name": "Courier", "purpose": "parcel drop", "type": "delivery",` +
		` "residentId": ` + strconv.FormatUint(host, 10) + `, "expectedDate": "2026-09-10T10:00:00Z"}`
	c, rec := newJSONCtx(e, http.MethodPost, "/api/visitors", body, guard, model.RoleGuard)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got visitorResp
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.HostID != host {
		t.Errorf("host_id = %d, want %d", got.HostID, host)
	}
	if got.Category != model.VisitorDelivery {
		t.Errorf("category = %s, want DELIVERY", got.Category)
	}
	if got.Purpose == nil || *got.Purpose != "parcel drop" {
		t.Errorf("purpose = %v, want parcel drop", got.Purpose)
	}
	if want := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC); !got.ExpectedAt.Equal(want) {
		t.Errorf("expected_at = %v, want %v", got.ExpectedAt, want)
	}
	if got.Status != model.VisitorApproved {
		t.Errorf("staff-registered status = %s, want APPROVED", got.Status)
	}
}

func TestPollVoteClosedReturns400(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, db, "admin@example.com", model.RoleAdmin)
	voter := testutil.SeedUser(t, db, "voter@example.com", model.RoleResident)

	svc := service.NewPollService(repository.NewPollRepo(db))
	poll, err := svc.Create(ctx, admin, "Repaint the lobby?", []string{"Yes", "No"}, time.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	if err := svc.Polls.Close(ctx, poll.ID); err != nil {
		t.Fatalf("close poll: %v", err)
	}
	h := NewPollHandler(svc)

	e := echo.New()
	c, rec := newJSONCtx(e, http.MethodPut, "/", `{"optionIndex": 0}`, voter, model.RoleResident)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(poll.ID, 10))
	if err := h.Vote(c); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("closed-poll vote status = %d, want 400", rec.Code)
	}
	if got := errBody(t, rec); got != "poll is closed" {
		t.Errorf("closed-poll message = %q", got)
	}
}

func TestPayBillStatuses(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "owner@example.com", model.RoleResident)
	other := testutil.SeedUser(t, db, "other@example.com", model.RoleResident)

	bills := repository.NewBillRepo(db)
	bill := model.Bill{
		UserID:      owner,
		Title:       "Clubhouse repair",
		Category:    model.BillMaintenance,
		AmountCents: 5000,
		DueDate:     time.Now().AddDate(0, 0, 10),
		Status:      model.BillPending,
	}
	if err := bills.Create(ctx, &bill); err != nil {
		t.Fatalf("create bill: %v", err)
	}
	h := NewBillHandler(service.NewBillingService(bills, repository.NewUserRepo(db), 150000))

	e := echo.New()
	pay := func(uid uint64) *httptest.ResponseRecorder {
		t.Helper()
		c, rec := newJSONCtx(e, http.MethodPost, "/", `{"paymentMethod": "UPI", "transactionId": "TXN-9"}`, uid, model.RoleResident)
		c.SetParamNames("id")
		c.SetParamValues(strconv.FormatUint(bill.ID, 10))
		if err := h.Pay(c); err != nil {
			t.Fatalf("pay handler: %v", err)
		}
		return rec
	}

	if rec := pay(other); rec.Code != http.StatusUnauthorized {
		t.Errorf("foreign payer status = %d, want 401", rec.Code)
	}
	if rec := pay(owner); rec.Code != http.StatusOK {
		t.Errorf("owner payment status = %d, want 200", rec.Code)
	}
	rec := pay(owner)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("double payment status = %d, want 400", rec.Code)
	}
	if got := errBody(t, rec); got != "bill already paid" {
		t.Errorf("double payment message = %q", got)
	}
}
