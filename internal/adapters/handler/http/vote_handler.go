package http

import (
	"encoding/json"
	"net/http"

	"github.com/hostelmess/polls/internal/core/ports"
)

type VoteHandler struct {
	service ports.PollService
}

func NewVoteHandler(service ports.PollService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type castVoteRequest struct {
	SelectedOptions []string `json:"selected_options"`
}

// CastVote replaces the caller's ballot for the poll and returns the
// freshly aggregated view. Anonymous callers may not vote.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.service.CastVote(r.Context(), principal, ports.CastVoteInput{
		PollID:     pollID,
		Selections: req.SelectedOptions,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
