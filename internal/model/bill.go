package model

import "time"

// Bill statuses.
const (
	BillPending = "PENDING"
	BillPaid    = "PAID"
	BillOverdue = "OVERDUE"
)

// Bill categories.
const (
	BillMaintenance = "MAINTENANCE"
	BillWater       = "WATER"
	BillElectricity = "ELECTRICITY"
	BillOther       = "OTHER"
)

// Bill mirrors the `bills` table. A bill is owned by a single user
// and may be paid exactly once; payment metadata is written together
// with the PAID transition and never overwritten afterwards.
//
// Period is set only for bills produced by the recurring monthly
// generator ("YYYY-MM"); together with UserID and Category it forms a
// unique key so the generator can run any number of times per month
// without double-billing.
type Bill struct {
	ID            uint64     `json:"id"`
	UserID        uint64     `json:"user_id"`
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	AmountCents   uint32     `json:"amount_cents"`
	DueDate       time.Time  `json:"due_date"`
	Status        string     `json:"status"`
	Period        *string    `json:"period,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
