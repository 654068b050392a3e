package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ballot is the single live vote record a user holds for a poll.
// Casting again replaces it; the store guarantees at most one row
// per (PollID, UserID).
type Ballot struct {
	ID              uuid.UUID `json:"id"`
	PollID          uuid.UUID `json:"poll_id"`
	UserID          uuid.UUID `json:"user_id"`
	SelectedOptions []string  `json:"selected_options"`
	CreatedAt       time.Time `json:"created_at"`
}
