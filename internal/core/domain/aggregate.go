package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Aggregate recomputes a PollView from a poll definition and its full
// ballot set. It is deterministic, commutative over ballot order and
// performs no I/O. Options nobody selected still appear with count 0.
// Percentages are full precision against the distinct-voter count;
// rounding is a presentation concern.
func Aggregate(poll *Poll, ballots []*Ballot, viewer *uuid.UUID, today time.Time) *PollView {
	counts := make(map[string]int64, len(poll.Options))
	for _, opt := range poll.Options {
		counts[opt] = 0
	}

	view := &PollView{
		Poll:         poll,
		Status:       Classify(poll, today),
		OptionCounts: counts,
		TotalBallots: int64(len(ballots)),
	}

	for _, b := range ballots {
		for _, opt := range b.SelectedOptions {
			// Selections referencing options a poll no longer knows are
			// ignored rather than invented as new tally lines.
			if _, ok := counts[opt]; ok {
				counts[opt]++
			}
		}
		if viewer != nil && b.UserID == *viewer {
			view.ViewerHasVoted = true
			view.ViewerSelections = append([]string(nil), b.SelectedOptions...)
		}
	}

	percentages := make(map[string]float64, len(counts))
	for opt, count := range counts {
		if view.TotalBallots > 0 {
			percentages[opt] = float64(count) / float64(view.TotalBallots) * 100
		} else {
			percentages[opt] = 0
		}
	}
	view.Percentages = percentages

	return view
}

// ValidateBallot checks a candidate ballot against the poll before it
// may be persisted. Pure; failures map one-to-one onto the sentinel
// errors and are never coerced (excess selections are rejected, not
// trimmed).
func ValidateBallot(poll *Poll, selections []string, today time.Time) error {
	if Classify(poll, today) == PollEnded {
		return ErrPollEnded
	}
	if len(selections) == 0 {
		return ErrEmptySelection
	}
	if !poll.AllowMultipleVotes && len(selections) > 1 {
		return ErrTooManySelections
	}

	seen := make(map[string]struct{}, len(selections))
	for _, sel := range selections {
		if !containsOption(poll.Options, sel) {
			return ErrUnknownOption
		}
		if _, dup := seen[sel]; dup {
			return ErrDuplicateSelection
		}
		seen[sel] = struct{}{}
	}
	return nil
}

// ValidateDefinition checks a poll definition at creation time: a title
// and description, at least two distinct non-blank options and an end
// date not already in the past.
func ValidateDefinition(title, description string, options []string, endDate, today time.Time) error {
	if strings.TrimSpace(title) == "" {
		return ErrInvalidDefinition
	}
	if strings.TrimSpace(description) == "" {
		return ErrInvalidDefinition
	}
	if len(options) < 2 {
		return ErrInvalidDefinition
	}
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		if strings.TrimSpace(opt) == "" {
			return ErrInvalidDefinition
		}
		if _, dup := seen[opt]; dup {
			return ErrInvalidDefinition
		}
		seen[opt] = struct{}{}
	}
	if dateOnly(today).After(dateOnly(endDate)) {
		return ErrInvalidDefinition
	}
	return nil
}

func containsOption(options []string, candidate string) bool {
	for _, opt := range options {
		if opt == candidate {
			return true
		}
	}
	return false
}
