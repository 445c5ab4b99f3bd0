package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/repository"
	"github.com/adityasharma9336/society-management-system/internal/testutil"
	"github.com/adityasharma9336/society-management-system/internal/utils"
)

func TestVisitorRegisterStatuses(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	host := testutil.SeedUser(t, db, "host@example.com", model.RoleResident)
	svc := NewVisitorService(repository.NewVisitorRepo(db))

	byResident, err := svc.Register(ctx, RegisterInput{HostID: host, Name: "Asha", Category: "GUEST"})
	if err != nil {
		t.Fatalf("resident register: %v", err)
	}
	if byResident.Status != model.VisitorPending {
		t.Errorf("resident-registered status = %s, want PENDING", byResident.Status)
	}
	if !strings.HasPrefix(byResident.PassCode, utils.PassCodePrefix) {
		t.Errorf("pass code %q missing prefix", byResident.PassCode)
	}

	byStaff, err := svc.Register(ctx, RegisterInput{HostID: host, Name: "Courier", Category: "delivery", ByStaff: true})
	if err != nil {
		t.Fatalf("staff register: %v", err)
	}
	if byStaff.Status != model.VisitorApproved {
		t.Errorf("staff-registered status = %s, want APPROVED", byStaff.Status)
	}
	if byStaff.Category != model.VisitorDelivery {
		t.Errorf("category = %s, want normalized DELIVERY", byStaff.Category)
	}

	if _, err := svc.Register(ctx, RegisterInput{HostID: host, Name: "  "}); !ErrInvalidArgument(err) {
		t.Errorf("blank name err = %v, want invalid-argument", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{HostID: host, Name: "X", Category: "ALIEN"}); !ErrInvalidArgument(err) {
		t.Errorf("unknown category err = %v, want invalid-argument", err)
	}
}

func TestVisitorRegisterCodeCollisions(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	host := testutil.SeedUser(t, db, "host@example.com", model.RoleResident)
	svc := NewVisitorService(repository.NewVisitorRepo(db))

	// Every generated code is identical, so the first registration
	// claims it and the second can only collide.
	attempts := 0
	svc.newPassCode = func() (string, error) {
		attempts++
		return "SC-7777", nil
	}

	if _, err := svc.Register(ctx, RegisterInput{HostID: host, Name: "First"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	attempts = 0
	if _, err := svc.Register(ctx, RegisterInput{HostID: host, Name: "Second"}); !errors.Is(err, ErrCodeSpaceExhausted) {
		t.Fatalf("second register err = %v, want ErrCodeSpaceExhausted", err)
	}
	if attempts != maxPassCodeAttempts {
		t.Errorf("generator called %d times, want %d", attempts, maxPassCodeAttempts)
	}
}

func TestVisitorCheckOutStampsExitOnce(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	host := testutil.SeedUser(t, db, "host@example.com", model.RoleResident)
	svc := NewVisitorService(repository.NewVisitorRepo(db))

	v, err := svc.Register(ctx, RegisterInput{HostID: host, Name: "Asha", ByStaff: true})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.CheckIn(ctx, v.ID); err != nil {
		t.Fatalf("check in: %v", err)
	}

	out1, err := svc.CheckOut(ctx, v.ID)
	if err != nil {
		t.Fatalf("check out: %v", err)
	}
	if out1.Status != model.VisitorCheckedOut || out1.ExitTime == nil {
		t.Fatalf("after checkout: status=%s exit=%v", out1.Status, out1.ExitTime)
	}

	time.Sleep(1100 * time.Millisecond) // DATETIME has second precision
	out2, err := svc.CheckOut(ctx, v.ID)
	if err != nil {
		t.Fatalf("repeat check out: %v", err)
	}
	if out2.ExitTime == nil || !out2.ExitTime.Equal(*out1.ExitTime) {
		t.Errorf("exit time changed on repeat checkout: %v -> %v", out1.ExitTime, out2.ExitTime)
	}
}

func TestVisitorStats(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	host := testutil.SeedUser(t, db, "host@example.com", model.RoleResident)
	svc := NewVisitorService(repository.NewVisitorRepo(db))

	guest, err := svc.Register(ctx, RegisterInput{HostID: host, Name: "Guest", Category: "GUEST", ByStaff: true})
	if err != nil {
		t.Fatalf("register guest: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{HostID: host, Name: "Courier", Category: "DELIVERY", ByStaff: true}); err != nil {
		t.Fatalf("register courier: %v", err)
	}
	if _, err := svc.CheckIn(ctx, guest.ID); err != nil {
		t.Fatalf("check in guest: %v", err)
	}

	// An old delivery falls inside the 30-day window but outside
	// today; one older still drops out of both.
	recent, err := svc.Register(ctx, RegisterInput{HostID: host, Name: "Old Courier", Category: "DELIVERY", ByStaff: true})
	if err != nil {
		t.Fatalf("register old courier: %v", err)
	}
	ancient, err := svc.Register(ctx, RegisterInput{HostID: host, Name: "Ancient", Category: "GUEST", ByStaff: true})
	if err != nil {
		t.Fatalf("register ancient guest: %v", err)
	}
	backdate := func(id uint64, days int) {
		t.Helper()
		if _, err := db.ExecContext(ctx,
			"UPDATE visitors SET created_at = DATE_SUB(created_at, INTERVAL ? DAY), expected_at = DATE_SUB(expected_at, INTERVAL ? DAY) WHERE id = ?",
			days, days, id); err != nil {
			t.Fatalf("backdate visitor %d: %v", id, err)
		}
	}
	backdate(recent.ID, 10)
	backdate(ancient.ID, 40)

	stats, err := svc.Stats(ctx, time.Now())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 2 {
		t.Errorf("total = %d, want 2", stats.Total)
	}
	if stats.Active != 1 {
		t.Errorf("active = %d, want 1", stats.Active)
	}
	if stats.Expected != 1 {
		t.Errorf("expected = %d, want 1 (the approved courier)", stats.Expected)
	}
	if stats.Deliveries != 1 {
		t.Errorf("deliveries = %d, want 1", stats.Deliveries)
	}
	if stats.TotalMonth != 3 {
		t.Errorf("total_30d = %d, want 3 (40-day-old guest excluded)", stats.TotalMonth)
	}
	if stats.DeliveriesMonth != 2 {
		t.Errorf("deliveries_30d = %d, want 2", stats.DeliveriesMonth)
	}
}
