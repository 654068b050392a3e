package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/hostelmess/polls/internal/core/domain"
	"github.com/hostelmess/polls/internal/core/ports"
	"github.com/hostelmess/polls/internal/logging"
)

type pollRepository struct {
	db *sql.DB
}

func NewPollRepository(db *sql.DB) ports.PollRepository {
	return &pollRepository{
		db: db,
	}
}

func (r *pollRepository) Insert(ctx context.Context, poll *domain.Poll) error {
	query := `
		INSERT INTO polls (id, title, description, options, end_date, allow_multiple_votes, is_anonymous, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		poll.ID, poll.Title, poll.Description, pq.Array(poll.Options),
		poll.EndDate, poll.AllowMultipleVotes, poll.IsAnonymous,
		poll.CreatedBy, poll.CreatedAt,
	)
	if err != nil {
		logging.Log.Errorf("POLL: insert failed: %v", err)
		return fmt.Errorf("failed to insert poll: %w", domain.ErrStoreUnavailable)
	}
	return nil
}

func (r *pollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	query := `
		SELECT id, title, description, options, end_date, allow_multiple_votes, is_anonymous, created_by, created_at
		FROM polls
		WHERE id = $1
	`

	var poll domain.Poll
	var options pq.StringArray
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&poll.ID, &poll.Title, &poll.Description, &options,
		&poll.EndDate, &poll.AllowMultipleVotes, &poll.IsAnonymous,
		&poll.CreatedBy, &poll.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrPollNotFound
		}
		logging.Log.Errorf("POLL: get %s failed: %v", id, err)
		return nil, fmt.Errorf("failed to get poll: %w", domain.ErrStoreUnavailable)
	}
	poll.Options = options

	return &poll, nil
}

func (r *pollRepository) GetAll(ctx context.Context) ([]*domain.Poll, error) {
	query := `
		SELECT id, title, description, options, end_date, allow_multiple_votes, is_anonymous, created_by, created_at
		FROM polls
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logging.Log.Errorf("POLL: list failed: %v", err)
		return nil, fmt.Errorf("failed to list polls: %w", domain.ErrStoreUnavailable)
	}
	defer rows.Close()

	var polls []*domain.Poll
	for rows.Next() {
		var poll domain.Poll
		var options pq.StringArray
		if err := rows.Scan(
			&poll.ID, &poll.Title, &poll.Description, &options,
			&poll.EndDate, &poll.AllowMultipleVotes, &poll.IsAnonymous,
			&poll.CreatedBy, &poll.CreatedAt,
		); err != nil {
			logging.Log.Errorf("POLL: scan failed: %v", err)
			return nil, fmt.Errorf("failed to scan poll: %w", domain.ErrStoreUnavailable)
		}
		poll.Options = options
		polls = append(polls, &poll)
	}
	if err := rows.Err(); err != nil {
		logging.Log.Errorf("POLL: iteration failed: %v", err)
		return nil, fmt.Errorf("error iterating polls: %w", domain.ErrStoreUnavailable)
	}
	return polls, nil
}

// Delete removes the poll and its ballots in one transaction so no
// orphan is ever observable, in either direction.
func (r *pollRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logging.Log.Errorf("POLL: begin delete tx failed: %v", err)
		return fmt.Errorf("failed to begin transaction: %w", domain.ErrStoreUnavailable)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM poll_responses WHERE poll_id = $1`, id); err != nil {
		logging.Log.Errorf("POLL: delete ballots for %s failed: %v", id, err)
		return fmt.Errorf("failed to delete ballots: %w", domain.ErrStoreUnavailable)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM polls WHERE id = $1`, id)
	if err != nil {
		logging.Log.Errorf("POLL: delete %s failed: %v", id, err)
		return fmt.Errorf("failed to delete poll: %w", domain.ErrStoreUnavailable)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", domain.ErrStoreUnavailable)
	}
	if affected == 0 {
		return domain.ErrPollNotFound
	}

	if err := tx.Commit(); err != nil {
		logging.Log.Errorf("POLL: commit delete of %s failed: %v", id, err)
		return fmt.Errorf("failed to commit transaction: %w", domain.ErrStoreUnavailable)
	}
	return nil
}
