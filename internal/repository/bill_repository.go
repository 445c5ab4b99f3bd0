package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/adityasharma9336/society-management-system/internal/model"
)

// BillRepo provides persistence for the `bills` table. The payment
// path exposes Tx variants so the handler can lock the bill row,
// verify ownership and state, and write payment metadata atomically.
type BillRepo struct {
	db *sql.DB
}

func NewBillRepo(db *sql.DB) *BillRepo { return &BillRepo{db: db} }

// DB exposes the underlying handle so services can open transactions.
func (r *BillRepo) DB() *sql.DB { return r.db }

const billColumns = "id,user_id,title,category,amount_cents,due_date,status,period,paid_at,payment_method,transaction_id,created_at,updated_at"

func scanBill(row interface{ Scan(...any) error }) (model.Bill, error) {
	var b model.Bill
	err := row.Scan(&b.ID, &b.UserID, &b.Title, &b.Category, &b.AmountCents, &b.DueDate,
		&b.Status, &b.Period, &b.PaidAt, &b.PaymentMethod, &b.TransactionID,
		&b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// Create inserts a bill and populates the generated ID and
// timestamps. A duplicate (user, period, category) key, which can
// only come from the monthly generator, is surfaced as
// ErrDuplicateBill.
func (r *BillRepo) Create(ctx context.Context, b *model.Bill) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bills (user_id, title, category, amount_cents, due_date, status, period)
		 VALUES (?,?,?,?,?,?,?)`,
		b.UserID, b.Title, b.Category, b.AmountCents, b.DueDate, b.Status, b.Period)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateBill
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	got, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = got
	return nil
}

// GetByID fetches a bill, ErrNotFound when missing.
func (r *BillRepo) GetByID(ctx context.Context, id uint64) (model.Bill, error) {
	b, err := scanBill(r.db.QueryRowContext(ctx,
		"SELECT "+billColumns+" FROM bills WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrNotFound
	}
	return b, err
}

// GetForUpdateTx fetches a bill and locks its row so concurrent pay
// attempts on the same bill serialise.
func (r *BillRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Bill, error) {
	b, err := scanBill(tx.QueryRowContext(ctx,
		"SELECT "+billColumns+" FROM bills WHERE id=? FOR UPDATE", id))
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrNotFound
	}
	return b, err
}

// MarkPaidTx records the PAID transition together with the payment
// metadata. Metadata columns are written exactly once.
func (r *BillRepo) MarkPaidTx(ctx context.Context, tx *sql.Tx, id uint64, at time.Time, method, txnID *string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE bills SET status=?, paid_at=?, payment_method=?, transaction_id=? WHERE id=?`,
		model.BillPaid, at, method, txnID, id)
	return err
}

// ListByUser returns the user's bills, newest due date first.
func (r *BillRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Bill, error) {
	return r.list(ctx,
		"SELECT "+billColumns+" FROM bills WHERE user_id=? ORDER BY due_date DESC", userID)
}

// ListAll returns every bill, newest due date first.
func (r *BillRepo) ListAll(ctx context.Context) ([]model.Bill, error) {
	return r.list(ctx, "SELECT "+billColumns+" FROM bills ORDER BY due_date DESC")
}

func (r *BillRepo) list(ctx context.Context, query string, args ...any) ([]model.Bill, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Bill, 0)
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
