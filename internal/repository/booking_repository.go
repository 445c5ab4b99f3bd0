package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/adityasharma9336/society-management-system/internal/model"
)

// BookingRepo provides CRUD operations for amenity bookings. The
// conflict-sensitive paths (listing active bookings for a slot and
// inserting a new one) expose Tx variants so the booking service can
// run the check and the insert in a single transaction. The caller
// must commit or rollback the transaction.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so services can open transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = "id,user_id,amenity_id,booking_date,start_time,end_time,status,created_at,updated_at"

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.AmenityID, &b.Date, &b.StartTime, &b.EndTime,
		&b.Status, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// ListActiveForSlotTx returns every PENDING or APPROVED booking for
// the given amenity and date, locking the rows for the duration of
// the transaction so a concurrent request for the same slot blocks
// until this one commits.
func (r *BookingRepo) ListActiveForSlotTx(ctx context.Context, tx *sql.Tx, amenityID uint64, date string) ([]model.Booking, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE amenity_id=? AND booking_date=? AND status IN (?,?)
		 FOR UPDATE`,
		amenityID, date, model.BookingPending, model.BookingApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CreateTx inserts a booking within the supplied transaction and
// populates the generated ID and timestamps. A duplicate-key error
// on the active-slot unique index, which covers only PENDING and
// APPROVED rows, is surfaced as ErrSlotTaken.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (user_id, amenity_id, booking_date, start_time, end_time, status)
		 VALUES (?,?,?,?,?,?)`,
		b.UserID, b.AmenityID, b.Date, b.StartTime, b.EndTime, b.Status)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrSlotTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	got, err := scanBooking(tx.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=? LIMIT 1", b.ID))
	if err != nil {
		return err
	}
	*b = got
	return nil
}

// GetByID fetches a single booking, ErrNotFound when missing.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrNotFound
	}
	return b, err
}

// UpdateStatus moves a booking through the approval workflow.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// CancelForUser marks the booking CANCELLED when it belongs to the
// given user. ErrNotFound is returned for a missing booking and
// ErrForbidden when it belongs to someone else.
func (r *BookingRepo) CancelForUser(ctx context.Context, id, userID uint64) error {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=?", model.BookingCancelled, id)
	return err
}

// ListByUser returns the user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return r.list(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE user_id=? ORDER BY booking_date DESC, start_time DESC", userID)
}

// ListAll returns every booking, newest first. Intended for admins
// working the approval queue.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	return r.list(ctx,
		"SELECT "+bookingColumns+" FROM bookings ORDER BY booking_date DESC, start_time DESC")
}

func (r *BookingRepo) list(ctx context.Context, query string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
