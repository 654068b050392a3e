package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hostelmess/polls/internal/core/domain"
)

type PollRepository interface {
	Insert(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	GetAll(ctx context.Context) ([]*domain.Poll, error)
	// Delete removes the poll and every ballot cast on it in a single
	// transaction; no orphaned ballots may survive.
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreatePollInput struct {
	Title              string
	Description        string
	Options            []string
	EndDate            time.Time
	AllowMultipleVotes bool
	IsAnonymous        bool
}

type CastVoteInput struct {
	PollID     uuid.UUID
	Selections []string
}

type PollService interface {
	Create(ctx context.Context, principal domain.Principal, input CreatePollInput) (*domain.Poll, error)
	CastVote(ctx context.Context, principal domain.Principal, input CastVoteInput) (*domain.PollView, error)
	GetPollView(ctx context.Context, pollID uuid.UUID, viewer *uuid.UUID) (*domain.PollView, error)
	Delete(ctx context.Context, principal domain.Principal, pollID uuid.UUID) error
	ListActive(ctx context.Context, viewer *uuid.UUID) ([]*domain.PollView, error)
	ListEnded(ctx context.Context, viewer *uuid.UUID) ([]*domain.PollView, error)
}
