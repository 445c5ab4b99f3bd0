package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/repository"
	"github.com/adityasharma9336/society-management-system/internal/testutil"
)

func TestPollVoteOncePerUser(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, db, "admin@example.com", model.RoleAdmin)
	voter := testutil.SeedUser(t, db, "voter@example.com", model.RoleResident)

	svc := NewPollService(repository.NewPollRepo(db))
	poll, err := svc.Create(ctx, admin, "Repaint the lobby?", []string{"Yes", "No"}, time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}

	res, err := svc.Vote(ctx, poll.ID, voter, 1)
	if err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if !res.HasVoted || res.UserVoteOption != 1 {
		t.Errorf("vote result = %+v, want ballot on option 1", res)
	}
	if got := res.Options[1].Votes; got != 1 {
		t.Errorf("option 1 tally = %d, want 1", got)
	}

	if _, err := svc.Vote(ctx, poll.ID, voter, 0); !errors.Is(err, repository.ErrAlreadyVoted) {
		t.Errorf("second vote err = %v, want ErrAlreadyVoted", err)
	}
	// The rejected second vote must not have touched any tally.
	opts, err := svc.Polls.Options(ctx, poll.ID)
	if err != nil {
		t.Fatalf("load options: %v", err)
	}
	if opts[0].Votes != 0 || opts[1].Votes != 1 {
		t.Errorf("tallies after rejected vote = %d/%d, want 0/1", opts[0].Votes, opts[1].Votes)
	}
}

func TestPollVoteOptionOutOfRange(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, db, "admin@example.com", model.RoleAdmin)
	svc := NewPollService(repository.NewPollRepo(db))
	poll, err := svc.Create(ctx, admin, "Quiet hours?", []string{"22:00", "23:00"}, time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	if _, err := svc.Vote(ctx, poll.ID, admin, 2); !ErrInvalidArgument(err) {
		t.Errorf("out-of-range vote err = %v, want invalid-argument", err)
	}
	if _, err := svc.Vote(ctx, poll.ID, admin, -1); !ErrInvalidArgument(err) {
		t.Errorf("negative option vote err = %v, want invalid-argument", err)
	}
	if _, err := svc.Vote(ctx, poll.ID+999, admin, 0); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("missing poll err = %v, want ErrNotFound", err)
	}
}

func TestPollVoteAfterDeadlinePersistsClosure(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, db, "admin@example.com", model.RoleAdmin)
	voter := testutil.SeedUser(t, db, "voter@example.com", model.RoleResident)

	svc := NewPollService(repository.NewPollRepo(db))
	poll, err := svc.Create(ctx, admin, "Extend gym hours?", []string{"Yes", "No"}, time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	// Backdate the deadline so the stored status still reads ACTIVE
	// while the poll is effectively over.
	if _, err := db.ExecContext(ctx,
		"UPDATE polls SET deadline=? WHERE id=?",
		time.Now().UTC().Add(-time.Minute), poll.ID); err != nil {
		t.Fatalf("backdate deadline: %v", err)
	}

	if _, err := svc.Vote(ctx, poll.ID, voter, 0); !errors.Is(err, repository.ErrInvalidState) {
		t.Fatalf("expired vote err = %v, want ErrInvalidState", err)
	}

	got, err := svc.Polls.GetByID(ctx, poll.ID)
	if err != nil {
		t.Fatalf("reload poll: %v", err)
	}
	if got.Status != model.PollClosed {
		t.Errorf("status after expired vote = %s, want CLOSED", got.Status)
	}

	// Voting on the now-CLOSED poll still fails, and no ballot exists.
	if _, err := svc.Vote(ctx, poll.ID, voter, 0); !errors.Is(err, repository.ErrInvalidState) {
		t.Errorf("closed vote err = %v, want ErrInvalidState", err)
	}
	if _, voted, err := svc.Polls.VoteOf(ctx, poll.ID, voter); err != nil || voted {
		t.Errorf("ballot after rejected votes: voted=%v err=%v", voted, err)
	}
}
