package domain

import (
	"time"

	"github.com/google/uuid"
)

type Poll struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	Options            []string  `json:"options"`
	EndDate            time.Time `json:"end_date"`
	AllowMultipleVotes bool      `json:"allow_multiple_votes"`
	IsAnonymous        bool      `json:"is_anonymous"`
	CreatedBy          uuid.UUID `json:"created_by"`
	CreatedAt          time.Time `json:"created_at"`
}

type PollStatus string

const (
	PollActive PollStatus = "active"
	PollEnded  PollStatus = "ended"
)

// Classify derives the poll status from the wall clock. A poll accepts
// votes through the whole of its end date; the status is never stored.
func Classify(poll *Poll, today time.Time) PollStatus {
	if dateOnly(today).After(dateOnly(poll.EndDate)) {
		return PollEnded
	}
	return PollActive
}

// dateOnly truncates to calendar-date precision. End dates are dates,
// not instants, so time-of-day must never influence classification.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
