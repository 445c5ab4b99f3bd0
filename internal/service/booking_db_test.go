package service

import (
	"context"
	"errors"
	"testing"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/repository"
	"github.com/adityasharma9336/society-management-system/internal/testutil"
)

func TestBookingRequestConflicts(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	userA := testutil.SeedUser(t, db, "resident-a@example.com", model.RoleResident)
	userB := testutil.SeedUser(t, db, "resident-b@example.com", model.RoleResident)

	amenities := repository.NewAmenityRepo(db)
	court := model.Amenity{Name: "Tennis Court", Category: "SPORTS", IsActive: true}
	if err := amenities.Create(ctx, &court); err != nil {
		t.Fatalf("create amenity: %v", err)
	}

	svc := NewBookingService(repository.NewBookingRepo(db), amenities)
	const date = "2026-09-05"

	first, err := svc.Request(ctx, userA, court.ID, date, "14:00", "15:00")
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if first.Status != model.BookingPending {
		t.Errorf("first booking status = %s, want PENDING", first.Status)
	}

	if _, err := svc.Request(ctx, userB, court.ID, date, "14:30", "15:30"); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("overlapping booking err = %v, want ErrConflict", err)
	}

	// A slot starting exactly when the first one ends is free.
	if _, err := svc.Request(ctx, userB, court.ID, date, "15:00", "16:00"); err != nil {
		t.Errorf("adjacent booking: %v", err)
	}

	// The same slot on another day does not conflict.
	if _, err := svc.Request(ctx, userB, court.ID, "2026-09-06", "14:00", "15:00"); err != nil {
		t.Errorf("same slot next day: %v", err)
	}
}

func TestBookingRequestCancelledSlotReusable(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "resident@example.com", model.RoleResident)
	amenities := repository.NewAmenityRepo(db)
	hall := model.Amenity{Name: "Clubhouse", IsActive: true}
	if err := amenities.Create(ctx, &hall); err != nil {
		t.Fatalf("create amenity: %v", err)
	}
	bookings := repository.NewBookingRepo(db)
	svc := NewBookingService(bookings, amenities)

	b, err := svc.Request(ctx, user, hall.ID, "2026-09-05", "10:00", "11:00")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if err := bookings.CancelForUser(ctx, b.ID, user); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// A cancelled booking no longer blocks the slot, not even the
	// exact same start time.
	if _, err := svc.Request(ctx, user, hall.ID, "2026-09-05", "10:00", "11:00"); err != nil {
		t.Errorf("rebook cancelled slot: %v", err)
	}
}

func TestBookingRequestValidation(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "resident@example.com", model.RoleResident)
	amenities := repository.NewAmenityRepo(db)
	gym := model.Amenity{Name: "Gym", IsActive: false}
	if err := amenities.Create(ctx, &gym); err != nil {
		t.Fatalf("create amenity: %v", err)
	}
	svc := NewBookingService(repository.NewBookingRepo(db), amenities)

	cases := []struct {
		name             string
		amenityID        uint64
		date, start, end string
		wantInvalid      bool
		wantNotFound     bool
	}{
		{"bad start time", gym.ID, "2026-09-05", "9:00", "10:00", true, false},
		{"end before start", gym.ID, "2026-09-05", "15:00", "14:00", true, false},
		{"zero-length slot", gym.ID, "2026-09-05", "14:00", "14:00", true, false},
		{"bad date", gym.ID, "05-09-2026", "14:00", "15:00", true, false},
		{"inactive amenity", gym.ID, "2026-09-05", "14:00", "15:00", false, true},
		{"missing amenity", gym.ID + 999, "2026-09-05", "14:00", "15:00", false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Request(ctx, user, tc.amenityID, tc.date, tc.start, tc.end)
			if tc.wantInvalid && !ErrInvalidArgument(err) {
				t.Errorf("err = %v, want invalid-argument", err)
			}
			if tc.wantNotFound && !errors.Is(err, repository.ErrNotFound) {
				t.Errorf("err = %v, want ErrNotFound", err)
			}
		})
	}
}
