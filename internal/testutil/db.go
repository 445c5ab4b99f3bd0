// Package testutil provides helpers for tests that exercise the real
// database layer. Tests needing a database read the TEST_DB_DSN
// environment variable (a go-sql-driver DSN with parseTime=true, for
// example "root:secret@tcp(localhost:3306)/society_test?parseTime=true")
// and skip when it is unset.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/adityasharma9336/society-management-system/internal/database"
)

// wipeOrder lists the tables child-first so deletes never trip a
// foreign key.
var wipeOrder = []string{
	"poll_votes",
	"poll_options",
	"polls",
	"bookings",
	"bills",
	"complaints",
	"notices",
	"visitors",
	"refresh_tokens",
	"amenities",
	"users",
}

// OpenDB connects to the test database, creates the schema and wipes
// every table so the test starts from a clean slate. The connection
// is closed automatically when the test finishes.
func OpenDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set; skipping database test")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("ping test database: %v", err)
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	for _, table := range wipeOrder {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("wipe table %s: %v", table, err)
		}
	}
	return db
}

// SeedUser inserts a user with a throwaway password hash and returns
// its ID.
func SeedUser(t *testing.T, db *sql.DB, email, role string) uint64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO users (email, password_hash, name, role) VALUES (?,?,?,?)",
		email, "x", "Test User", role)
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("seed user id: %v", err)
	}
	return uint64(id)
}
