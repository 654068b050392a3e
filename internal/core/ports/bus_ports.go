package ports

import (
	"context"

	"github.com/google/uuid"
)

// ChangeBus delivers change signals for polls. Delivery is at-least-once
// and may duplicate or reorder; notifications carry no delta state, only
// the id of the poll whose ballots changed. Subscribers re-fetch and
// re-aggregate.
type ChangeBus interface {
	Publish(ctx context.Context, pollID uuid.UUID) error
	Subscribe(ctx context.Context, handler func(pollID uuid.UUID)) error
}
