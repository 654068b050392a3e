package http

import (
	"errors"
	"net/http"

	"github.com/hostelmess/polls/internal/core/domain"
)

// statusForError maps the domain error taxonomy onto HTTP statuses. The
// kinds stay distinguishable so the UI can translate them; nothing is
// coerced into a generic failure unless it genuinely is one.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrPollNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidPollID):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrPollEnded):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptySelection),
		errors.Is(err, domain.ErrUnknownOption),
		errors.Is(err, domain.ErrDuplicateSelection),
		errors.Is(err, domain.ErrTooManySelections),
		errors.Is(err, domain.ErrInvalidDefinition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusForError(err))
}
