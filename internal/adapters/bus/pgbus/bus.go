package pgbus

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/hostelmess/polls/internal/core/ports"
	"github.com/hostelmess/polls/internal/logging"
)

// channel is the single NOTIFY channel all poll change signals share;
// the payload is the poll id. Subscribers re-fetch, so fan-out over one
// channel is enough.
const channel = "poll_changes"

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	keepaliveInterval    = 90 * time.Second
)

// bus implements the change bus over Postgres LISTEN/NOTIFY. Delivery
// is at-least-once from the subscriber's point of view: reconnects can
// drop notifications, which is fine because signals carry no state.
// The listener connection is opened on Subscribe, never at
// construction, so publish-only buses hold no extra connection.
type bus struct {
	db      *sql.DB
	connStr string

	mu       sync.Mutex
	listener *pq.Listener
}

func New(db *sql.DB, connStr string) ports.ChangeBus {
	return &bus{db: db, connStr: connStr}
}

func (b *bus) Publish(ctx context.Context, pollID uuid.UUID) error {
	if _, err := b.db.ExecContext(ctx, `SELECT pg_notify($1, $2)`, channel, pollID.String()); err != nil {
		return fmt.Errorf("failed to publish poll change: %w", err)
	}
	return nil
}

func (b *bus) Subscribe(ctx context.Context, handler func(pollID uuid.UUID)) error {
	listener := pq.NewListener(b.connStr, minReconnectInterval, maxReconnectInterval, func(event pq.ListenerEventType, err error) {
		if err != nil {
			logging.Log.Warnf("BUS: listener event %d: %v", event, err)
		}
	})
	if err := listener.Listen(channel); err != nil {
		listener.Close()
		return fmt.Errorf("failed to listen on %s: %w", channel, err)
	}

	b.mu.Lock()
	b.listener = listener
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				if err := listener.Close(); err != nil {
					logging.Log.Warnf("BUS: close failed: %v", err)
				}
				return
			case notification := <-listener.Notify:
				if notification == nil {
					// Connection was re-established. Notifications may have
					// been missed; subscribers recover on the next signal
					// since they always re-fetch full state.
					continue
				}
				pollID, err := uuid.Parse(notification.Extra)
				if err != nil {
					logging.Log.Warnf("BUS: dropping malformed notification %q", notification.Extra)
					continue
				}
				handler(pollID)
			case <-time.After(keepaliveInterval):
				go func() {
					if err := listener.Ping(); err != nil {
						logging.Log.Warnf("BUS: keepalive ping failed: %v", err)
					}
				}()
			}
		}
	}()

	return nil
}
