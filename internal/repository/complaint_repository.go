package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/adityasharma9336/society-management-system/internal/model"
)

// ComplaintRepo provides flat CRUD persistence for complaints.
type ComplaintRepo struct {
	db *sql.DB
}

func NewComplaintRepo(db *sql.DB) *ComplaintRepo { return &ComplaintRepo{db: db} }

const complaintColumns = "id,user_id,title,description,category,status,created_at,updated_at"

func scanComplaint(row interface{ Scan(...any) error }) (model.Complaint, error) {
	var c model.Complaint
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.Description, &c.Category, &c.Status,
		&c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *ComplaintRepo) Create(ctx context.Context, c *model.Complaint) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO complaints (user_id, title, description, category, status)
		 VALUES (?,?,?,?,?)`,
		c.UserID, c.Title, c.Description, c.Category, c.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	got, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = got
	return nil
}

func (r *ComplaintRepo) GetByID(ctx context.Context, id uint64) (model.Complaint, error) {
	c, err := scanComplaint(r.db.QueryRowContext(ctx,
		"SELECT "+complaintColumns+" FROM complaints WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	return c, err
}

func (r *ComplaintRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE complaints SET status=? WHERE id=?", status, id)
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

func (r *ComplaintRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Complaint, error) {
	return r.list(ctx,
		"SELECT "+complaintColumns+" FROM complaints WHERE user_id=? ORDER BY created_at DESC", userID)
}

func (r *ComplaintRepo) ListAll(ctx context.Context) ([]model.Complaint, error) {
	return r.list(ctx, "SELECT "+complaintColumns+" FROM complaints ORDER BY created_at DESC")
}

func (r *ComplaintRepo) list(ctx context.Context, query string, args ...any) ([]model.Complaint, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Complaint, 0)
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
