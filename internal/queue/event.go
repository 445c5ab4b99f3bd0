// Package queue defines notification payloads exchanged over the
// message broker and the background consumer that drains them.
package queue

// NotificationQueueName is the durable queue all notification events
// flow through.
const NotificationQueueName = "society.notifications"

// Event kinds published by the handlers.
const (
	EventBillPaid       = "bill.paid"
	EventVisitorDecided = "visitor.decided"
	EventNoticePosted   = "notice.posted"
)

// NotificationEvent is a fire-and-forget message emitted by the HTTP
// layer when something residents or admins care about happens. It
// carries enough information for downstream consumers to notify or
// log without querying the primary database. Delivery is best
// effort; publish failures never fail the triggering request.
type NotificationEvent struct {
	Kind       string `json:"kind"`
	UserID     uint64 `json:"user_id,omitempty"`
	EntityID   uint64 `json:"entity_id,omitempty"`
	Title      string `json:"title,omitempty"`
	Detail     string `json:"detail,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
