package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/adityasharma9336/society-management-system/internal/model"
)

// NoticeRepo provides flat CRUD persistence for the notice board.
type NoticeRepo struct {
	db *sql.DB
}

func NewNoticeRepo(db *sql.DB) *NoticeRepo { return &NoticeRepo{db: db} }

func (r *NoticeRepo) Create(ctx context.Context, n *model.Notice) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO notices (title, body, posted_by) VALUES (?,?,?)",
		n.Title, n.Body, n.PostedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	got, err := r.GetByID(ctx, n.ID)
	if err != nil {
		return err
	}
	*n = got
	return nil
}

func (r *NoticeRepo) GetByID(ctx context.Context, id uint64) (model.Notice, error) {
	var n model.Notice
	err := r.db.QueryRowContext(ctx,
		"SELECT id, title, body, posted_by, created_at FROM notices WHERE id=? LIMIT 1",
		id).Scan(&n.ID, &n.Title, &n.Body, &n.PostedBy, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return n, ErrNotFound
	}
	return n, err
}

func (r *NoticeRepo) List(ctx context.Context) ([]model.Notice, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, title, body, posted_by, created_at FROM notices ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Notice, 0)
	for rows.Next() {
		var n model.Notice
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.PostedBy, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
