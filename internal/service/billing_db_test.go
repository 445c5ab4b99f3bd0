package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/repository"
	"github.com/adityasharma9336/society-management-system/internal/testutil"
)

func TestGenerateMonthlyIdempotent(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	testutil.SeedUser(t, db, "admin@example.com", model.RoleAdmin)
	r1 := testutil.SeedUser(t, db, "flat-101@example.com", model.RoleResident)
	testutil.SeedUser(t, db, "flat-102@example.com", model.RoleResident)

	bills := repository.NewBillRepo(db)
	svc := NewBillingService(bills, repository.NewUserRepo(db), 150000)
	ref := time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)

	created, skipped, err := svc.GenerateMonthly(ctx, ref)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if created != 2 || skipped != 0 {
		t.Errorf("first run created=%d skipped=%d, want 2/0", created, skipped)
	}

	// Admins are not billed.
	b1, err := bills.ListByUser(ctx, r1)
	if err != nil {
		t.Fatalf("list bills: %v", err)
	}
	if len(b1) != 1 {
		t.Fatalf("resident has %d bills, want 1", len(b1))
	}
	if b1[0].Period == nil || *b1[0].Period != "2026-08" {
		t.Errorf("bill period = %v, want 2026-08", b1[0].Period)
	}
	if b1[0].Title != "Maintenance - August 2026" {
		t.Errorf("bill title = %q", b1[0].Title)
	}
	if b1[0].AmountCents != 150000 {
		t.Errorf("bill amount = %d, want 150000", b1[0].AmountCents)
	}

	// A second run for the same month creates nothing new.
	created, skipped, err = svc.GenerateMonthly(ctx, ref.AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if created != 0 || skipped != 2 {
		t.Errorf("second run created=%d skipped=%d, want 0/2", created, skipped)
	}

	// The next month bills everyone again.
	created, skipped, err = svc.GenerateMonthly(ctx, ref.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("next month run: %v", err)
	}
	if created != 2 || skipped != 0 {
		t.Errorf("next month created=%d skipped=%d, want 2/0", created, skipped)
	}
}

func TestPayBillOnce(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "owner@example.com", model.RoleResident)
	other := testutil.SeedUser(t, db, "other@example.com", model.RoleResident)

	bills := repository.NewBillRepo(db)
	svc := NewBillingService(bills, repository.NewUserRepo(db), 150000)

	bill := model.Bill{
		UserID:      owner,
		Title:       "Water charges",
		Category:    model.BillWater,
		AmountCents: 42000,
		DueDate:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Status:      model.BillPending,
	}
	if err := bills.Create(ctx, &bill); err != nil {
		t.Fatalf("create bill: %v", err)
	}

	if _, err := svc.Pay(ctx, bill.ID, other, nil, nil); !errors.Is(err, repository.ErrForbidden) {
		t.Errorf("foreign payer err = %v, want ErrForbidden", err)
	}

	method := "UPI"
	txn := "TXN-123"
	paid, err := svc.Pay(ctx, bill.ID, owner, &method, &txn)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if paid.Status != model.BillPaid {
		t.Errorf("status after pay = %s, want PAID", paid.Status)
	}
	if paid.PaidAt == nil || paid.PaymentMethod == nil || *paid.PaymentMethod != "UPI" {
		t.Errorf("payment metadata not recorded: %+v", paid)
	}

	otherMethod := "CASH"
	if _, err := svc.Pay(ctx, bill.ID, owner, &otherMethod, nil); !errors.Is(err, repository.ErrInvalidState) {
		t.Errorf("double pay err = %v, want ErrInvalidState", err)
	}

	// The first payment's metadata survives the rejected retry.
	got, err := bills.GetByID(ctx, bill.ID)
	if err != nil {
		t.Fatalf("reload bill: %v", err)
	}
	if got.PaymentMethod == nil || *got.PaymentMethod != "UPI" {
		t.Errorf("payment method after retry = %v, want UPI", got.PaymentMethod)
	}
	if got.TransactionID == nil || *got.TransactionID != "TXN-123" {
		t.Errorf("transaction id after retry = %v, want TXN-123", got.TransactionID)
	}

	if _, err := svc.Pay(ctx, bill.ID+999, owner, nil, nil); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("missing bill err = %v, want ErrNotFound", err)
	}
}
