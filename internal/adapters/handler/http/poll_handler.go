package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hostelmess/polls/internal/core/domain"
	"github.com/hostelmess/polls/internal/core/ports"
	"github.com/hostelmess/polls/internal/logging"
)

type PollHandler struct {
	service ports.PollService
}

func NewPollHandler(service ports.PollService) *PollHandler {
	return &PollHandler{
		service: service,
	}
}

type createPollRequest struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Options            []string `json:"options"`
	EndDate            string   `json:"end_date"`
	AllowMultipleVotes bool     `json:"allow_multiple_votes"`
	IsAnonymous        bool     `json:"is_anonymous"`
}

func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		http.Error(w, "end_date must be a YYYY-MM-DD date", http.StatusBadRequest)
		return
	}

	poll, err := h.service.Create(r.Context(), principal, ports.CreatePollInput{
		Title:              req.Title,
		Description:        req.Description,
		Options:            req.Options,
		EndDate:            endDate,
		AllowMultipleVotes: req.AllowMultipleVotes,
		IsAnonymous:        req.IsAnonymous,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, poll)
}

func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	view, err := h.service.GetPollView(r.Context(), pollID, viewerFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *PollHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListActive(r.Context(), viewerFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *PollHandler) ListEnded(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListEnded(r.Context(), viewerFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.Delete(r.Context(), principal, pollID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pollIDParam(r *http.Request) (uuid.UUID, error) {
	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, domain.ErrInvalidPollID
	}
	return pollID, nil
}

// viewerFrom returns the viewer id for result personalization, nil for
// anonymous callers.
func viewerFrom(r *http.Request) *uuid.UUID {
	if principal, ok := principalFrom(r); ok {
		return &principal.ID
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// The status line is already written, so the client cannot be
		// told; all we can do is record the failure.
		logging.Log.Errorf("HTTP: failed to encode response: %v", err)
	}
}
