package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/adityasharma9336/society-management-system/internal/model"
)

// PollRepo provides persistence for polls, their ordered options and
// the one-ballot-per-user vote records. The voting path runs inside
// a transaction owned by the poll service; the (poll_id, user_id)
// unique index on poll_votes backstops the already-voted check.
type PollRepo struct {
	db *sql.DB
}

func NewPollRepo(db *sql.DB) *PollRepo { return &PollRepo{db: db} }

// DB exposes the underlying handle so services can open transactions.
func (r *PollRepo) DB() *sql.DB { return r.db }

const pollColumns = "id,question,created_by,deadline,status,created_at,updated_at"

func scanPoll(row interface{ Scan(...any) error }) (model.Poll, error) {
	var p model.Poll
	err := row.Scan(&p.ID, &p.Question, &p.CreatedBy, &p.Deadline, &p.Status,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create inserts a poll and its options in one transaction. Options
// are stored with their zero-based index to preserve ordering.
func (r *PollRepo) Create(ctx context.Context, p *model.Poll, options []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	res, err := tx.ExecContext(ctx,
		"INSERT INTO polls (question, created_by, deadline, status) VALUES (?,?,?,?)",
		p.Question, p.CreatedBy, p.Deadline, p.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	for i, text := range options {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO poll_options (poll_id, option_index, text, votes) VALUES (?,?,?,0)",
			p.ID, i, text); err != nil {
			return err
		}
	}
	got, err := scanPoll(tx.QueryRowContext(ctx,
		"SELECT "+pollColumns+" FROM polls WHERE id=? LIMIT 1", p.ID))
	if err != nil {
		return err
	}
	*p = got
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID fetches a poll without locking, ErrNotFound when missing.
func (r *PollRepo) GetByID(ctx context.Context, id uint64) (model.Poll, error) {
	p, err := scanPoll(r.db.QueryRowContext(ctx,
		"SELECT "+pollColumns+" FROM polls WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

// GetForUpdateTx fetches a poll and locks its row for the duration of
// the transaction, serialising concurrent vote attempts on the same
// poll document.
func (r *PollRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Poll, error) {
	p, err := scanPoll(tx.QueryRowContext(ctx,
		"SELECT "+pollColumns+" FROM polls WHERE id=? FOR UPDATE", id))
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

// CloseTx persists the ACTIVE -> CLOSED transition.
func (r *PollRepo) CloseTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE polls SET status=? WHERE id=?", model.PollClosed, id)
	return err
}

// Close persists the CLOSED status outside a transaction (explicit
// admin closure).
func (r *PollRepo) Close(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE polls SET status=? WHERE id=?", model.PollClosed, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// OptionCountTx returns how many options the poll has.
func (r *PollRepo) OptionCountTx(ctx context.Context, tx *sql.Tx, pollID uint64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM poll_options WHERE poll_id=?", pollID).Scan(&n)
	return n, err
}

// VoteOfTx returns the option index the user voted for, or found =
// false when the user has no ballot on the poll.
func (r *PollRepo) VoteOfTx(ctx context.Context, tx *sql.Tx, pollID, userID uint64) (int, bool, error) {
	var idx int
	err := tx.QueryRowContext(ctx,
		"SELECT option_index FROM poll_votes WHERE poll_id=? AND user_id=? LIMIT 1",
		pollID, userID).Scan(&idx)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return idx, true, nil
}

// AddVoteTx increments the chosen option's tally and appends the
// ballot record. Both writes happen inside the caller's transaction;
// a duplicate ballot insert is surfaced as ErrAlreadyVoted.
func (r *PollRepo) AddVoteTx(ctx context.Context, tx *sql.Tx, pollID, userID uint64, optionIndex int) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE poll_options SET votes=votes+1 WHERE poll_id=? AND option_index=?",
		pollID, optionIndex)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO poll_votes (poll_id, user_id, option_index) VALUES (?,?,?)",
		pollID, userID, optionIndex); err != nil {
		if isDuplicateKey(err) {
			return ErrAlreadyVoted
		}
		return err
	}
	return nil
}

// Options returns the poll's options ordered by index.
func (r *PollRepo) Options(ctx context.Context, pollID uint64) ([]model.PollOption, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, poll_id, option_index, text, votes FROM poll_options WHERE poll_id=? ORDER BY option_index",
		pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.PollOption, 0)
	for rows.Next() {
		var o model.PollOption
		if err := rows.Scan(&o.ID, &o.PollID, &o.OptionIndex, &o.Text, &o.Votes); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// VoteOf is the non-transactional variant of VoteOfTx, used when
// rendering poll listings for a caller.
func (r *PollRepo) VoteOf(ctx context.Context, pollID, userID uint64) (int, bool, error) {
	var idx int
	err := r.db.QueryRowContext(ctx,
		"SELECT option_index FROM poll_votes WHERE poll_id=? AND user_id=? LIMIT 1",
		pollID, userID).Scan(&idx)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return idx, true, nil
}

// List returns every poll, newest first.
func (r *PollRepo) List(ctx context.Context) ([]model.Poll, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+pollColumns+" FROM polls ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Poll, 0)
	for rows.Next() {
		p, err := scanPoll(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
