package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/repository"
)

// BillingService generates monthly maintenance dues and processes
// payments. Generation is keyed by (user, period, category) so the
// operation may run zero, one, or many times for a month and leave
// identical persisted state.
type BillingService struct {
	Bills       *repository.BillRepo
	Users       *repository.UserRepo
	AmountCents uint32 // default maintenance amount per bill
}

func NewBillingService(bills *repository.BillRepo, users *repository.UserRepo, amountCents uint32) *BillingService {
	if bills == nil || users == nil {
		panic("nil repository passed to NewBillingService")
	}
	return &BillingService{Bills: bills, Users: users, AmountCents: amountCents}
}

// GenerateMonthly creates one PENDING maintenance bill per active
// resident for the month containing ref. Bills are due 10 days after
// the period start and titled after the billing month. Residents
// already billed for the period are skipped. It returns how many
// bills were created and how many were skipped as duplicates.
func (s *BillingService) GenerateMonthly(ctx context.Context, ref time.Time) (created, skipped int, err error) {
	periodStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	period := periodStart.Format("2006-01")
	title := fmt.Sprintf("Maintenance - %s", periodStart.Format("January 2006"))
	due := periodStart.AddDate(0, 0, 10)

	residents, err := s.Users.ListIDsByRole(ctx, model.RoleResident)
	if err != nil {
		return 0, 0, err
	}
	for _, uid := range residents {
		b := model.Bill{
			UserID:      uid,
			Title:       title,
			Category:    model.BillMaintenance,
			AmountCents: s.AmountCents,
			DueDate:     due,
			Status:      model.BillPending,
			Period:      &period,
		}
		switch err := s.Bills.Create(ctx, &b); {
		case err == nil:
			created++
		case errors.Is(err, repository.ErrDuplicateBill):
			skipped++
		default:
			return created, skipped, err
		}
	}
	return created, skipped, nil
}

// Pay marks the bill PAID on behalf of its owner. It returns
// repository.ErrNotFound for a missing bill, repository.ErrForbidden
// when the payer does not own the bill, and
// repository.ErrInvalidState when the bill is already paid, leaving
// the first payment's metadata intact.
func (s *BillingService) Pay(ctx context.Context, billID, payerID uint64, method, txnID *string) (model.Bill, error) {
	var zero model.Bill
	tx, err := s.Bills.DB().BeginTx(ctx, nil)
	if err != nil {
		return zero, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	bill, err := s.Bills.GetForUpdateTx(ctx, tx, billID)
	if err != nil {
		return zero, err
	}
	if bill.UserID != payerID {
		return zero, repository.ErrForbidden
	}
	if bill.Status == model.BillPaid {
		return zero, repository.ErrInvalidState
	}
	now := time.Now().UTC()
	if err := s.Bills.MarkPaidTx(ctx, tx, billID, now, method, txnID); err != nil {
		return zero, err
	}
	if err := tx.Commit(); err != nil {
		return zero, err
	}
	committed = true
	return s.Bills.GetByID(ctx, billID)
}
