package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/hostelmess/polls/internal/core/domain"
)

type BallotRepository interface {
	// ListByPoll returns every live ballot for the poll, unpaginated.
	// Aggregation must see the full set.
	ListByPoll(ctx context.Context, pollID uuid.UUID) ([]*domain.Ballot, error)
	// Upsert atomically replaces any existing ballot for the same
	// (poll, user) pair. The store owns the uniqueness guarantee;
	// concurrent double-submission must leave exactly one row.
	Upsert(ctx context.Context, ballot *domain.Ballot) error
}
