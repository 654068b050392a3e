package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hostelmess/polls/internal/core/domain"
	"github.com/hostelmess/polls/internal/core/ports"
	"github.com/hostelmess/polls/internal/logging"
)

// pollService is the transactional boundary around the pure aggregation
// core. All store and bus calls happen here; the domain package never
// performs I/O.
type pollService struct {
	pollRepo   ports.PollRepository
	ballotRepo ports.BallotRepository
	bus        ports.ChangeBus
	now        func() time.Time
}

func NewPollService(pollRepo ports.PollRepository, ballotRepo ports.BallotRepository, bus ports.ChangeBus) ports.PollService {
	return &pollService{
		pollRepo:   pollRepo,
		ballotRepo: ballotRepo,
		bus:        bus,
		now:        time.Now,
	}
}

func (s *pollService) Create(ctx context.Context, principal domain.Principal, input ports.CreatePollInput) (*domain.Poll, error) {
	if !principal.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	now := s.now()
	if err := domain.ValidateDefinition(input.Title, input.Description, input.Options, input.EndDate, now); err != nil {
		return nil, err
	}

	poll := &domain.Poll{
		ID:                 uuid.New(),
		Title:              input.Title,
		Description:        input.Description,
		Options:            input.Options,
		EndDate:            input.EndDate,
		AllowMultipleVotes: input.AllowMultipleVotes,
		IsAnonymous:        input.IsAnonymous,
		CreatedBy:          principal.ID,
		CreatedAt:          now,
	}

	if err := s.pollRepo.Insert(ctx, poll); err != nil {
		return nil, fmt.Errorf("failed to insert poll: %w", err)
	}

	return poll, nil
}

func (s *pollService) CastVote(ctx context.Context, principal domain.Principal, input ports.CastVoteInput) (*domain.PollView, error) {
	poll, err := s.pollRepo.GetByID(ctx, input.PollID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := domain.ValidateBallot(poll, input.Selections, now); err != nil {
		return nil, err
	}

	ballot := &domain.Ballot{
		ID:              uuid.New(),
		PollID:          poll.ID,
		UserID:          principal.ID,
		SelectedOptions: input.Selections,
		CreatedAt:       now,
	}

	// The store upsert is the serialization point for concurrent casts
	// by the same user; exactly one ballot row survives.
	if err := s.ballotRepo.Upsert(ctx, ballot); err != nil {
		return nil, fmt.Errorf("failed to upsert ballot: %w", err)
	}

	// Publish only once the write is durable, so subscribers never see a
	// notification for state that has not landed. A failed publish does
	// not undo the vote; the bus is a best-effort refresh signal.
	if err := s.bus.Publish(ctx, poll.ID); err != nil {
		logging.Log.Warnf("failed to publish change for poll %s: %v", poll.ID, err)
	}

	return s.viewOf(ctx, poll, &principal.ID, now)
}

func (s *pollService) GetPollView(ctx context.Context, pollID uuid.UUID, viewer *uuid.UUID) (*domain.PollView, error) {
	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	// Ended polls stay viewable indefinitely.
	return s.viewOf(ctx, poll, viewer, s.now())
}

func (s *pollService) Delete(ctx context.Context, principal domain.Principal, pollID uuid.UUID) error {
	if !principal.IsAdmin() {
		return domain.ErrForbidden
	}

	if _, err := s.pollRepo.GetByID(ctx, pollID); err != nil {
		return err
	}

	// Poll and ballots go in one store-level transaction.
	if err := s.pollRepo.Delete(ctx, pollID); err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}

	if err := s.bus.Publish(ctx, pollID); err != nil {
		logging.Log.Warnf("failed to publish deletion of poll %s: %v", pollID, err)
	}

	return nil
}

func (s *pollService) ListActive(ctx context.Context, viewer *uuid.UUID) ([]*domain.PollView, error) {
	return s.listByStatus(ctx, viewer, domain.PollActive)
}

func (s *pollService) ListEnded(ctx context.Context, viewer *uuid.UUID) ([]*domain.PollView, error) {
	return s.listByStatus(ctx, viewer, domain.PollEnded)
}

func (s *pollService) listByStatus(ctx context.Context, viewer *uuid.UUID, status domain.PollStatus) ([]*domain.PollView, error) {
	polls, err := s.pollRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}

	now := s.now()
	views := []*domain.PollView{}
	for _, poll := range polls {
		if domain.Classify(poll, now) != status {
			continue
		}
		view, err := s.viewOf(ctx, poll, viewer, now)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *pollService) viewOf(ctx context.Context, poll *domain.Poll, viewer *uuid.UUID, now time.Time) (*domain.PollView, error) {
	ballots, err := s.ballotRepo.ListByPoll(ctx, poll.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ballots: %w", err)
	}
	return domain.Aggregate(poll, ballots, viewer, now), nil
}
