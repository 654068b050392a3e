package ports

import (
	"context"

	"github.com/hostelmess/polls/internal/core/domain"
)

// IdentityProvider resolves a bearer credential into the acting
// principal. A nil principal with no error means an anonymous caller,
// who may view polls but not vote.
type IdentityProvider interface {
	CurrentUser(ctx context.Context, credential string) (*domain.Principal, error)
}
