package service

import (
	"context"
	"fmt"
	"time"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/repository"
)

// PollService enforces the one-ballot-per-user invariant and
// maintains option tallies. A vote attempt on an ACTIVE poll whose
// deadline has passed persists the CLOSED transition and is itself
// rejected (lazy expiry).
type PollService struct {
	Polls *repository.PollRepo
}

func NewPollService(polls *repository.PollRepo) *PollService {
	if polls == nil {
		panic("nil repository passed to NewPollService")
	}
	return &PollService{Polls: polls}
}

// VoteResult is the outcome of a successful vote: the poll, its
// options with updated tallies, and the caller's ballot merged in for
// convenience. HasVoted/UserVoteOption are derived response fields,
// not stored.
type VoteResult struct {
	Poll           model.Poll
	Options        []model.PollOption
	HasVoted       bool
	UserVoteOption int
}

// Vote applies the preconditions in order, each failing with a
// descriptive error and no mutation:
//
//	1. poll exists            -> repository.ErrNotFound
//	2. status is not CLOSED   -> repository.ErrInvalidState
//	3. deadline not passed    -> poll flipped to CLOSED, then ErrInvalidState
//	4. no prior ballot        -> repository.ErrAlreadyVoted
//	5. option index in bounds -> invalid-argument error
//
// On success the chosen option's tally is incremented and the ballot
// appended, atomically with respect to the poll row.
func (s *PollService) Vote(ctx context.Context, pollID, userID uint64, optionIndex int) (VoteResult, error) {
	var zero VoteResult
	tx, err := s.Polls.DB().BeginTx(ctx, nil)
	if err != nil {
		return zero, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	poll, err := s.Polls.GetForUpdateTx(ctx, tx, pollID)
	if err != nil {
		return zero, err
	}
	if poll.Status == model.PollClosed {
		return zero, repository.ErrInvalidState
	}
	if time.Now().UTC().After(poll.Deadline) {
		// Deadline elapsed while the poll still reads ACTIVE: persist
		// the closure as a side effect of this failed vote attempt.
		if err := s.Polls.CloseTx(ctx, tx, pollID); err != nil {
			return zero, err
		}
		if err := tx.Commit(); err != nil {
			return zero, err
		}
		committed = true
		return zero, repository.ErrInvalidState
	}
	if _, voted, err := s.Polls.VoteOfTx(ctx, tx, pollID, userID); err != nil {
		return zero, err
	} else if voted {
		return zero, repository.ErrAlreadyVoted
	}
	count, err := s.Polls.OptionCountTx(ctx, tx, pollID)
	if err != nil {
		return zero, err
	}
	if optionIndex < 0 || optionIndex >= count {
		return zero, fmt.Errorf("%w: option index out of range", errInvalidArgument)
	}
	if err := s.Polls.AddVoteTx(ctx, tx, pollID, userID, optionIndex); err != nil {
		return zero, err
	}
	if err := tx.Commit(); err != nil {
		return zero, err
	}
	committed = true

	options, err := s.Polls.Options(ctx, pollID)
	if err != nil {
		return zero, err
	}
	return VoteResult{
		Poll:           poll,
		Options:        options,
		HasVoted:       true,
		UserVoteOption: optionIndex,
	}, nil
}

// Create inserts an ACTIVE poll with its ordered options.
func (s *PollService) Create(ctx context.Context, createdBy uint64, question string, options []string, deadline time.Time) (model.Poll, error) {
	var zero model.Poll
	if question == "" {
		return zero, fmt.Errorf("%w: question is required", errInvalidArgument)
	}
	if len(options) < 2 {
		return zero, fmt.Errorf("%w: at least two options required", errInvalidArgument)
	}
	if !deadline.After(time.Now().UTC()) {
		return zero, fmt.Errorf("%w: deadline must be in the future", errInvalidArgument)
	}
	p := model.Poll{
		Question:  question,
		CreatedBy: createdBy,
		Deadline:  deadline,
		Status:    model.PollActive,
	}
	if err := s.Polls.Create(ctx, &p, options); err != nil {
		return zero, err
	}
	return p, nil
}

// EffectiveStatus computes deadline-aware closure for reads, so
// listings show CLOSED as soon as the deadline passes even before any
// vote attempt persists the transition.
func EffectiveStatus(p model.Poll, now time.Time) string {
	if p.Status == model.PollActive && now.UTC().After(p.Deadline) {
		return model.PollClosed
	}
	return p.Status
}
