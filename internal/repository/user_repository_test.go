package repository

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/testutil"
	"github.com/adityasharma9336/society-management-system/internal/utils"
)

func TestUserCreateAndLookup(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	repo := NewUserRepo(db)

	flat := "B-204"
	id, err := repo.Create(ctx, "  Asha@Example.COM ", "s3cret!", "Asha", model.RoleResident, &flat, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	// Email is normalized on write and on lookup.
	u, err := repo.GetByEmail(ctx, "ASHA@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if u.ID != id || u.Email != "asha@example.com" {
		t.Errorf("lookup returned id=%d email=%q", u.ID, u.Email)
	}
	if !utils.VerifyPassword(u.PasswordHash, "s3cret!") {
		t.Error("stored hash does not verify the password")
	}
	if u.Flat == nil || *u.Flat != "B-204" {
		t.Errorf("flat = %v, want B-204", u.Flat)
	}

	if _, err := repo.Create(ctx, "asha@example.com", "other", "Imposter", model.RoleResident, nil, bcrypt.MinCost); !errors.Is(err, ErrEmailExists) {
		t.Errorf("duplicate email err = %v, want ErrEmailExists", err)
	}
}

func TestListIDsByRole(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	repo := NewUserRepo(db)

	testutil.SeedUser(t, db, "admin@example.com", model.RoleAdmin)
	r1 := testutil.SeedUser(t, db, "r1@example.com", model.RoleResident)
	r2 := testutil.SeedUser(t, db, "r2@example.com", model.RoleResident)
	inactive := testutil.SeedUser(t, db, "gone@example.com", model.RoleResident)
	if _, err := db.ExecContext(ctx, "UPDATE users SET is_active=0 WHERE id=?", inactive); err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	ids, err := repo.ListIDsByRole(ctx, model.RoleResident)
	if err != nil {
		t.Fatalf("list residents: %v", err)
	}
	if len(ids) != 2 || ids[0] != r1 || ids[1] != r2 {
		t.Errorf("resident ids = %v, want [%d %d]", ids, r1, r2)
	}
}
