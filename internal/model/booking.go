package model

import "time"

// Booking statuses. New bookings start PENDING and move through the
// approval workflow; only PENDING and APPROVED bookings block a slot.
const (
	BookingPending   = "PENDING"
	BookingApproved  = "APPROVED"
	BookingRejected  = "REJECTED"
	BookingCancelled = "CANCELLED"
)

// Amenity mirrors the `amenities` table. Amenities are bookable
// facilities such as a clubhouse or tennis court.
type Amenity struct {
	ID               uint64    `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Capacity         uint32    `json:"capacity"`
	HourlyPriceCents uint32    `json:"hourly_price_cents"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Booking mirrors the `bookings` table. A booking reserves an
// amenity for a half-open [StartTime, EndTime) window on a single
// calendar day. StartTime and EndTime are zero-padded 24-hour
// "HH:mm" wall-clock strings, so lexicographic comparison is also
// chronological comparison; Date is "YYYY-MM-DD". Cross-midnight
// bookings are not representable.
type Booking struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	AmenityID uint64    `json:"amenity_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
