package ports

import (
	"context"

	"github.com/hostelmess/polls/internal/core/domain"
)

type SummaryService interface {
	Summarize(ctx context.Context) (*domain.Summary, error)
}
