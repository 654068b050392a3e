package domain

// PollView is the derived result of aggregating every ballot of a poll.
// It is recomputed from the full ballot set on every read and is never
// persisted or treated as authoritative state.
type PollView struct {
	Poll             *Poll              `json:"poll"`
	Status           PollStatus         `json:"status"`
	OptionCounts     map[string]int64   `json:"option_counts"`
	TotalBallots     int64              `json:"total_ballots"`
	Percentages      map[string]float64 `json:"percentages"`
	ViewerHasVoted   bool               `json:"viewer_has_voted"`
	ViewerSelections []string           `json:"viewer_selections,omitempty"`
}

// PollParticipation is the per-poll line of the admin summary.
type PollParticipation struct {
	PollID       string     `json:"poll_id"`
	Title        string     `json:"title"`
	Status       PollStatus `json:"status"`
	TotalBallots int64      `json:"total_ballots"`
}

// Summary aggregates participation across every poll for the admin
// dashboard.
type Summary struct {
	TotalPolls   int                 `json:"total_polls"`
	ActivePolls  int                 `json:"active_polls"`
	EndedPolls   int                 `json:"ended_polls"`
	TotalBallots int64               `json:"total_ballots"`
	Polls        []PollParticipation `json:"polls"`
}
