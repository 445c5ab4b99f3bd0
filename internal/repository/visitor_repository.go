package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/adityasharma9336/society-management-system/internal/model"
)

// VisitorRepo encapsulates database operations for the `visitors`
// table. Status transitions are single-row updates; the service
// layer decides which transitions are allowed.
type VisitorRepo struct {
	db *sql.DB
}

func NewVisitorRepo(db *sql.DB) *VisitorRepo { return &VisitorRepo{db: db} }

// DB exposes the underlying handle so services can open transactions.
func (r *VisitorRepo) DB() *sql.DB { return r.db }

const visitorColumns = "id,host_id,name,phone,purpose,category,status,pass_code,expected_at,exit_time,created_at,updated_at"

func scanVisitor(row interface{ Scan(...any) error }) (model.Visitor, error) {
	var v model.Visitor
	err := row.Scan(&v.ID, &v.HostID, &v.Name, &v.Phone, &v.Purpose, &v.Category, &v.Status,
		&v.PassCode, &v.ExpectedAt, &v.ExitTime, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

// Create inserts a visitor row. When the pass code collides with an
// existing one, ErrPassCodeExists is returned so the caller can retry
// with a fresh code.
func (r *VisitorRepo) Create(ctx context.Context, v *model.Visitor) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO visitors (host_id, name, phone, purpose, category, status, pass_code, expected_at)
		 VALUES (?,?,?,?,?,?,?,?)`,
		v.HostID, v.Name, v.Phone, v.Purpose, v.Category, v.Status, v.PassCode, v.ExpectedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrPassCodeExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	got, err := r.GetByID(ctx, v.ID)
	if err != nil {
		return err
	}
	*v = got
	return nil
}

// GetByID fetches a single visitor. ErrNotFound is returned when the
// row does not exist.
func (r *VisitorRepo) GetByID(ctx context.Context, id uint64) (model.Visitor, error) {
	v, err := scanVisitor(r.db.QueryRowContext(ctx,
		"SELECT "+visitorColumns+" FROM visitors WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return v, ErrNotFound
	}
	return v, err
}

// UpdateStatus sets the visitor's status unconditionally. The decide
// and check-in flows deliberately allow overwriting a previous
// decision. ErrNotFound is returned when no row matched.
func (r *VisitorRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE visitors SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is also 0 when the status already has the
		// requested value, so confirm existence before reporting 404.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// CheckOut transitions the visitor to CHECKED_OUT and stamps
// exit_time. The exit time is written only on the transition into
// CHECKED_OUT and never updated afterwards.
func (r *VisitorRepo) CheckOut(ctx context.Context, id uint64, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE visitors SET status=?, exit_time=COALESCE(exit_time, ?) WHERE id=?`,
		model.VisitorCheckedOut, at, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// ListByHost returns all visitors hosted by the given resident,
// newest first.
func (r *VisitorRepo) ListByHost(ctx context.Context, hostID uint64) ([]model.Visitor, error) {
	return r.list(ctx,
		"SELECT "+visitorColumns+" FROM visitors WHERE host_id=? ORDER BY created_at DESC", hostID)
}

// ListAll returns every visitor, newest first. Intended for staff.
func (r *VisitorRepo) ListAll(ctx context.Context) ([]model.Visitor, error) {
	return r.list(ctx,
		"SELECT "+visitorColumns+" FROM visitors ORDER BY created_at DESC")
}

func (r *VisitorRepo) list(ctx context.Context, query string, args ...any) ([]model.Visitor, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Visitor, 0)
	for rows.Next() {
		v, err := scanVisitor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Stats aggregates gate activity. dayStart/dayEnd bound the local
// calendar day (midnight to midnight) and monthStart opens the
// rolling 30-day window ending at dayEnd. Active counts everyone
// currently on-site regardless of entry day.
func (r *VisitorRepo) Stats(ctx context.Context, dayStart, dayEnd, monthStart time.Time) (model.VisitorStats, error) {
	var s model.VisitorStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
		  SUM(status = ?) AS active,
		  SUM(status = ? AND expected_at >= ? AND expected_at < ?) AS expected,
		  SUM(created_at >= ? AND created_at < ?) AS total,
		  SUM(category = ? AND created_at >= ? AND created_at < ?) AS deliveries,
		  SUM(created_at >= ? AND created_at < ?) AS total_30d,
		  SUM(category = ? AND created_at >= ? AND created_at < ?) AS deliveries_30d
		FROM visitors`,
		model.VisitorCheckedIn,
		model.VisitorApproved, dayStart, dayEnd,
		dayStart, dayEnd,
		model.VisitorDelivery, dayStart, dayEnd,
		monthStart, dayEnd,
		model.VisitorDelivery, monthStart, dayEnd,
	).Scan(
		nullInt(&s.Active), nullInt(&s.Expected), nullInt(&s.Total), nullInt(&s.Deliveries),
		nullInt(&s.TotalMonth), nullInt(&s.DeliveriesMonth),
	)
	return s, err
}

// nullInt adapts an *int to scan SUM() results, which are NULL on an
// empty table.
func nullInt(dst *int) *sqlNullIntScanner { return &sqlNullIntScanner{dst: dst} }

type sqlNullIntScanner struct{ dst *int }

func (s *sqlNullIntScanner) Scan(src any) error {
	var n sql.NullInt64
	if err := n.Scan(src); err != nil {
		return err
	}
	if n.Valid {
		*s.dst = int(n.Int64)
	} else {
		*s.dst = 0
	}
	return nil
}
