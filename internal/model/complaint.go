package model

import "time"

// Complaint statuses.
const (
	ComplaintOpen       = "OPEN"
	ComplaintInProgress = "IN_PROGRESS"
	ComplaintResolved   = "RESOLVED"
)

// Complaint mirrors the `complaints` table. Complaints are flat CRUD
// records with no invariants beyond field typing.
type Complaint struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Notice mirrors the `notices` table. Posting a notice also emits a
// best-effort notification event for connected clients.
type Notice struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	PostedBy  uint64    `json:"posted_by"`
	CreatedAt time.Time `json:"created_at"`
}
