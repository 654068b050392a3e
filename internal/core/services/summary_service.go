package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hostelmess/polls/internal/core/domain"
	"github.com/hostelmess/polls/internal/core/ports"
)

type summaryService struct {
	pollRepo   ports.PollRepository
	ballotRepo ports.BallotRepository
	now        func() time.Time
}

func NewSummaryService(pollRepo ports.PollRepository, ballotRepo ports.BallotRepository) ports.SummaryService {
	return &summaryService{
		pollRepo:   pollRepo,
		ballotRepo: ballotRepo,
		now:        time.Now,
	}
}

// Summarize computes cross-poll participation for the admin dashboard.
// Per-poll ballot counts are fetched concurrently; each goroutine writes
// only its own slot.
func (s *summaryService) Summarize(ctx context.Context) (*domain.Summary, error) {
	polls, err := s.pollRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch all polls: %w", err)
	}

	now := s.now()
	rows := make([]domain.PollParticipation, len(polls))
	errChan := make(chan error, len(polls))

	var wg sync.WaitGroup
	for i, poll := range polls {
		wg.Add(1)
		go func(i int, poll *domain.Poll) {
			defer wg.Done()
			ballots, err := s.ballotRepo.ListByPoll(ctx, poll.ID)
			if err != nil {
				errChan <- fmt.Errorf("failed to count ballots for poll %s: %w", poll.ID, err)
				return
			}
			rows[i] = domain.PollParticipation{
				PollID:       poll.ID.String(),
				Title:        poll.Title,
				Status:       domain.Classify(poll, now),
				TotalBallots: int64(len(ballots)),
			}
		}(i, poll)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	summary := &domain.Summary{
		TotalPolls: len(polls),
		Polls:      rows,
	}
	for _, row := range rows {
		summary.TotalBallots += row.TotalBallots
		if row.Status == domain.PollActive {
			summary.ActivePolls++
		} else {
			summary.EndedPolls++
		}
	}

	return summary, nil
}
