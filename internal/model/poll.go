package model

import "time"

// Poll statuses. A poll whose deadline has passed is effectively
// closed even while the stored status still reads ACTIVE; the CLOSED
// transition is persisted lazily by the first vote attempt that
// discovers the expired deadline.
const (
	PollActive = "ACTIVE"
	PollClosed = "CLOSED"
)

// Poll mirrors the `polls` table.
type Poll struct {
	ID        uint64    // polls.id
	Question  string    // polls.question
	CreatedBy uint64    // polls.created_by
	Deadline  time.Time // polls.deadline
	Status    string    // polls.status
	CreatedAt time.Time // polls.created_at
	UpdatedAt time.Time // polls.updated_at
}

// PollOption mirrors the `poll_options` table. Options are ordered
// by OptionIndex within their poll and carry a running vote tally.
type PollOption struct {
	ID          uint64 // poll_options.id
	PollID      uint64 // poll_options.poll_id
	OptionIndex int    // poll_options.option_index
	Text        string // poll_options.text
	Votes       int    // poll_options.votes
}

// PollVote mirrors the `poll_votes` table, one ballot per user per
// poll. The (poll_id, user_id) pair is unique.
type PollVote struct {
	ID          uint64    // poll_votes.id
	PollID      uint64    // poll_votes.poll_id
	UserID      uint64    // poll_votes.user_id
	OptionIndex int       // poll_votes.option_index
	CreatedAt   time.Time // poll_votes.created_at
}
