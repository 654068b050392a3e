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

type ballotRepository struct {
	db *sql.DB
}

func NewBallotRepository(db *sql.DB) ports.BallotRepository {
	return &ballotRepository{
		db: db,
	}
}

// ListByPoll returns every ballot for the poll. Legacy rows written by
// the old portal carry a single selected_option text column instead of
// the selected_options array; they are adapted here so the aggregation
// core only ever sees the unified shape.
func (r *ballotRepository) ListByPoll(ctx context.Context, pollID uuid.UUID) ([]*domain.Ballot, error) {
	query := `
		SELECT id, poll_id, user_id, selected_option, selected_options, created_at
		FROM poll_responses
		WHERE poll_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		logging.Log.Errorf("BALLOT: list for poll %s failed: %v", pollID, err)
		return nil, fmt.Errorf("failed to list ballots: %w", domain.ErrStoreUnavailable)
	}
	defer rows.Close()

	var ballots []*domain.Ballot
	for rows.Next() {
		var ballot domain.Ballot
		var legacy sql.NullString
		var selections pq.StringArray
		if err := rows.Scan(&ballot.ID, &ballot.PollID, &ballot.UserID, &legacy, &selections, &ballot.CreatedAt); err != nil {
			logging.Log.Errorf("BALLOT: scan failed: %v", err)
			return nil, fmt.Errorf("failed to scan ballot: %w", domain.ErrStoreUnavailable)
		}

		if len(selections) > 0 {
			ballot.SelectedOptions = selections
		} else if legacy.Valid && legacy.String != "" {
			ballot.SelectedOptions = []string{legacy.String}
		}

		ballots = append(ballots, &ballot)
	}
	if err := rows.Err(); err != nil {
		logging.Log.Errorf("BALLOT: iteration failed: %v", err)
		return nil, fmt.Errorf("error iterating ballots: %w", domain.ErrStoreUnavailable)
	}
	return ballots, nil
}

// Upsert replaces any existing ballot for the same (poll, user) pair in
// a single statement. The unique constraint on (poll_id, user_id) makes
// this the serialization point for concurrent casts; last write wins and
// exactly one row survives. The legacy column is cleared so re-votes
// migrate old rows to the unified shape.
func (r *ballotRepository) Upsert(ctx context.Context, ballot *domain.Ballot) error {
	query := `
		INSERT INTO poll_responses (id, poll_id, user_id, selected_options, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (poll_id, user_id) DO UPDATE
		SET selected_options = EXCLUDED.selected_options,
		    selected_option = NULL,
		    created_at = EXCLUDED.created_at
	`
	_, err := r.db.ExecContext(ctx, query,
		ballot.ID, ballot.PollID, ballot.UserID,
		pq.Array(ballot.SelectedOptions), ballot.CreatedAt,
	)
	if err != nil {
		logging.Log.Errorf("BALLOT: upsert for poll %s user %s failed: %v", ballot.PollID, ballot.UserID, err)
		return fmt.Errorf("failed to upsert ballot: %w", domain.ErrStoreUnavailable)
	}
	return nil
}
