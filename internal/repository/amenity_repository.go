package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/adityasharma9336/society-management-system/internal/model"
)

// AmenityRepo encapsulates database operations for the `amenities`
// table.
type AmenityRepo struct {
	db *sql.DB
}

func NewAmenityRepo(db *sql.DB) *AmenityRepo { return &AmenityRepo{db: db} }

const amenityColumns = "id,name,category,capacity,hourly_price_cents,is_active,created_at,updated_at"

func scanAmenity(row interface{ Scan(...any) error }) (model.Amenity, error) {
	var a model.Amenity
	err := row.Scan(&a.ID, &a.Name, &a.Category, &a.Capacity, &a.HourlyPriceCents,
		&a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// Create inserts an amenity and populates the generated ID and
// timestamps on the provided record.
func (r *AmenityRepo) Create(ctx context.Context, a *model.Amenity) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO amenities (name, category, capacity, hourly_price_cents, is_active)
		 VALUES (?,?,?,?,?)`,
		a.Name, a.Category, a.Capacity, a.HourlyPriceCents, a.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	got, err := r.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	*a = got
	return nil
}

// GetByID fetches a single amenity, ErrNotFound when missing.
func (r *AmenityRepo) GetByID(ctx context.Context, id uint64) (model.Amenity, error) {
	a, err := scanAmenity(r.db.QueryRowContext(ctx,
		"SELECT "+amenityColumns+" FROM amenities WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrNotFound
	}
	return a, err
}

// Update rewrites the mutable amenity fields.
func (r *AmenityRepo) Update(ctx context.Context, a *model.Amenity) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE amenities SET name=?, category=?, capacity=?, hourly_price_cents=?, is_active=? WHERE id=?`,
		a.Name, a.Category, a.Capacity, a.HourlyPriceCents, a.IsActive, a.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByID(ctx, a.ID); err != nil {
			return err
		}
	}
	return nil
}

// ListActive returns all amenities currently open for booking.
func (r *AmenityRepo) ListActive(ctx context.Context) ([]model.Amenity, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+amenityColumns+" FROM amenities WHERE is_active=1 ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Amenity, 0)
	for rows.Next() {
		a, err := scanAmenity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
