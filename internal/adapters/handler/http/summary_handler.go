package http

import (
	"net/http"

	"github.com/hostelmess/polls/internal/core/domain"
	"github.com/hostelmess/polls/internal/core/ports"
)

type SummaryHandler struct {
	service ports.SummaryService
}

func NewSummaryHandler(service ports.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		service: service,
	}
}

// GetSummary serves the admin dashboard's cross-poll participation
// figures. Admin only.
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	if !principal.IsAdmin() {
		writeError(w, domain.ErrForbidden)
		return
	}

	summary, err := h.service.Summarize(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
