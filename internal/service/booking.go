// Package service holds the domain services behind the HTTP
// handlers: visitor pass lifecycle, amenity booking admission, poll
// voting and recurring billing. Services own their transactions and
// return repository sentinel errors for handlers to translate.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/repository"
)

var timeOfDay = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidSlotTime reports whether s is a zero-padded 24-hour "HH:mm"
// string. The fixed-width format is what makes lexicographic
// comparison of slot times correct.
func ValidSlotTime(s string) bool { return timeOfDay.MatchString(s) }

// Overlaps reports whether the half-open intervals [s1,e1) and
// [s2,e2) intersect. Touching endpoints do not overlap: a booking
// ending at 15:00 leaves 15:00 free.
func Overlaps(s1, e1, s2, e2 string) bool {
	return s1 < e2 && s2 < e1
}

// BookingService admits or rejects amenity bookings. The overlap
// check and the insert run inside one transaction with the competing
// rows locked, so two concurrent requests for conflicting slots
// cannot both succeed; the unique index over active slots is a second
// line of defence for the exact-start case.
type BookingService struct {
	Bookings  *repository.BookingRepo
	Amenities *repository.AmenityRepo
}

func NewBookingService(bookings *repository.BookingRepo, amenities *repository.AmenityRepo) *BookingService {
	if bookings == nil || amenities == nil {
		panic("nil repository passed to NewBookingService")
	}
	return &BookingService{Bookings: bookings, Amenities: amenities}
}

// Request validates the slot, checks it against existing PENDING and
// APPROVED bookings for the same amenity and date, and inserts a new
// PENDING booking when no overlap exists. It returns
// repository.ErrConflict when the slot overlaps an active booking and
// repository.ErrNotFound when the amenity does not exist or is
// inactive.
func (s *BookingService) Request(ctx context.Context, userID, amenityID uint64, date, startTime, endTime string) (model.Booking, error) {
	var zero model.Booking
	if !ValidSlotTime(startTime) || !ValidSlotTime(endTime) {
		return zero, fmt.Errorf("%w: times must be HH:mm", errInvalidArgument)
	}
	if startTime >= endTime {
		return zero, fmt.Errorf("%w: startTime must be before endTime", errInvalidArgument)
	}
	if !dateRe.MatchString(date) {
		return zero, fmt.Errorf("%w: date must be YYYY-MM-DD", errInvalidArgument)
	}
	amenity, err := s.Amenities.GetByID(ctx, amenityID)
	if err != nil {
		return zero, err
	}
	if !amenity.IsActive {
		return zero, repository.ErrNotFound
	}

	tx, err := s.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return zero, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	existing, err := s.Bookings.ListActiveForSlotTx(ctx, tx, amenityID, date)
	if err != nil {
		return zero, err
	}
	for _, b := range existing {
		if Overlaps(startTime, endTime, b.StartTime, b.EndTime) {
			return zero, repository.ErrConflict
		}
	}

	booking := model.Booking{
		UserID:    userID,
		AmenityID: amenityID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    model.BookingPending,
	}
	if err := s.Bookings.CreateTx(ctx, tx, &booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return zero, repository.ErrConflict
		}
		return zero, err
	}
	if err := tx.Commit(); err != nil {
		return zero, err
	}
	committed = true
	return booking, nil
}

var dateRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)
