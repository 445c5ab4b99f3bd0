package model

import "time"

// Visitor statuses. A visitor registered by a resident starts as
// PENDING; one registered by staff (admin or gate guard) starts as
// APPROVED. EXPECTED is accepted on input as a synonym of APPROVED
// and normalised before persisting.
const (
	VisitorPending    = "PENDING"
	VisitorApproved   = "APPROVED"
	VisitorCheckedIn  = "CHECKED_IN"
	VisitorCheckedOut = "CHECKED_OUT"
	VisitorDenied     = "DENIED"
)

// Visitor categories.
const (
	VisitorGuest       = "GUEST"
	VisitorDelivery    = "DELIVERY"
	VisitorHomeService = "HOME_SERVICE"
	VisitorDailyHelp   = "DAILY_HELP"
	VisitorWorker      = "WORKER"
	VisitorOther       = "OTHER"
)

// Visitor mirrors the `visitors` table. A visitor is tied to the
// resident who hosts them and carries a short human-readable pass
// code presented at the gate. The pass code is unique across all
// visitors; uniqueness is enforced by the database and retried by
// the service layer on collision.
//
// Fields:
//  ID           – primary key identifier.
//  HostID       – resident hosting the visitor.
//  Name         – visitor's name.
//  Phone        – visitor's phone number (optional).
//  Purpose      – free-text reason for the visit (optional).
//  Category     – one of the Visitor* category constants.
//  Status       – one of the Visitor* status constants.
//  PassCode     – unique gate pass token, e.g. "SC-4821".
//  ExpectedAt   – requested arrival time.
//  ExitTime     – set once, when the visitor checks out.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Visitor struct {
	ID         uint64     // visitors.id
	HostID     uint64     // visitors.host_id
	Name       string     // visitors.name
	Phone      *string    // visitors.phone (nullable)
	Purpose    *string    // visitors.purpose (nullable)
	Category   string     // visitors.category
	Status     string     // visitors.status
	PassCode   string     // visitors.pass_code (unique)
	ExpectedAt time.Time  // visitors.expected_at
	ExitTime   *time.Time // visitors.exit_time (nullable)
	CreatedAt  time.Time  // visitors.created_at
	UpdatedAt  time.Time  // visitors.updated_at
}

// VisitorStats is the aggregate returned by GET /api/visitors/stats.
// Total and Deliveries use both a local midnight-to-midnight "today"
// window and a rolling 30-day window; Expected is today-only. Active
// counts everyone currently on-site regardless of entry day.
type VisitorStats struct {
	Active          int `json:"active"`
	Expected        int `json:"expected"`
	Total           int `json:"total"`
	Deliveries      int `json:"deliveries"`
	TotalMonth      int `json:"total_30d"`
	DeliveriesMonth int `json:"deliveries_30d"`
}
