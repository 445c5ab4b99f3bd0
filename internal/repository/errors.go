// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as services and handlers to distinguish between failure
// scenarios without inspecting SQL errors. For example, ErrSlotTaken
// signals that a booking insert violated the exact-slot uniqueness
// backstop, while ErrAlreadyVoted indicates a second ballot by the
// same user on the same poll.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a referenced entity does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 401 or 403 response depending on the route contract.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because it
// would violate an overlap or uniqueness invariant, such as booking a
// slot that overlaps a pending or approved booking.
var ErrConflict = errors.New("conflict")

// ErrInvalidState is returned when the operation is not permitted in
// the entity's current state, such as voting on a closed poll or
// paying a bill that is already paid.
var ErrInvalidState = errors.New("invalid state")

// ErrAlreadyVoted is returned when a user attempts a second ballot on
// the same poll.
var ErrAlreadyVoted = errors.New("already voted")

// ErrSlotTaken is returned when the unique (amenity, date, start)
// index rejects a booking insert. It is the transactional backstop
// behind the overlap check.
var ErrSlotTaken = errors.New("slot taken")

// ErrEmailExists is returned when registering a user with an email
// that is already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrPassCodeExists is returned when a visitor insert collides with
// an existing pass code. The visitor service retries code generation
// on this error.
var ErrPassCodeExists = errors.New("pass code already exists")

// ErrDuplicateBill is returned when the monthly generator attempts to
// insert a bill whose (user, period, category) key already exists.
// Callers treat it as "already generated" and move on.
var ErrDuplicateBill = errors.New("bill already generated for period")

// isDuplicateKey reports whether err is a MySQL duplicate-key error
// (server error 1062).
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "1062")
}
