package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/testutil"
)

func TestVisitorCreateDuplicatePassCode(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	host := testutil.SeedUser(t, db, "host@example.com", model.RoleResident)
	repo := NewVisitorRepo(db)

	v1 := model.Visitor{
		HostID:     host,
		Name:       "First",
		Category:   model.VisitorGuest,
		Status:     model.VisitorPending,
		PassCode:   "SC-0001",
		ExpectedAt: time.Now().UTC(),
	}
	if err := repo.Create(ctx, &v1); err != nil {
		t.Fatalf("create first visitor: %v", err)
	}
	if v1.ID == 0 {
		t.Error("first visitor ID not populated")
	}

	v2 := model.Visitor{
		HostID:     host,
		Name:       "Second",
		Category:   model.VisitorGuest,
		Status:     model.VisitorPending,
		PassCode:   "SC-0001",
		ExpectedAt: time.Now().UTC(),
	}
	if err := repo.Create(ctx, &v2); !errors.Is(err, ErrPassCodeExists) {
		t.Errorf("duplicate pass code err = %v, want ErrPassCodeExists", err)
	}

	v2.PassCode = "SC-0002"
	if err := repo.Create(ctx, &v2); err != nil {
		t.Errorf("create with fresh pass code: %v", err)
	}
}

func TestVisitorUpdateStatusMissingRow(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	repo := NewVisitorRepo(db)

	if err := repo.UpdateStatus(ctx, 12345, model.VisitorApproved); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing visitor err = %v, want ErrNotFound", err)
	}
	if err := repo.CheckOut(ctx, 12345, time.Now().UTC()); !errors.Is(err, ErrNotFound) {
		t.Errorf("checkout missing visitor err = %v, want ErrNotFound", err)
	}
	if _, err := repo.GetByID(ctx, 12345); !errors.Is(err, ErrNotFound) {
		t.Errorf("get missing visitor err = %v, want ErrNotFound", err)
	}
}

func TestVisitorUpdateStatusIdempotent(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	host := testutil.SeedUser(t, db, "host@example.com", model.RoleResident)
	repo := NewVisitorRepo(db)

	v := model.Visitor{
		HostID:     host,
		Name:       "Asha",
		Category:   model.VisitorGuest,
		Status:     model.VisitorPending,
		PassCode:   "SC-0042",
		ExpectedAt: time.Now().UTC(),
	}
	if err := repo.Create(ctx, &v); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Setting the same status twice must not read as a missing row.
	if err := repo.UpdateStatus(ctx, v.ID, model.VisitorApproved); err != nil {
		t.Fatalf("first approve: %v", err)
	}
	if err := repo.UpdateStatus(ctx, v.ID, model.VisitorApproved); err != nil {
		t.Errorf("repeat approve: %v", err)
	}
}
