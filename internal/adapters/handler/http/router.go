package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hostelmess/polls/internal/core/ports"
)

func NewHandler(pollHandler *PollHandler, voteHandler *VoteHandler, summaryHandler *SummaryHandler, provider ports.IdentityProvider) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(WithPrincipal(provider))

	r.Route("/api", func(r chi.Router) {
		r.Route("/polls", func(r chi.Router) {
			r.Post("/", pollHandler.CreatePoll)
			r.Get("/active", pollHandler.ListActive)
			r.Get("/ended", pollHandler.ListEnded)
			r.Get("/{id}", pollHandler.GetPoll)
			r.Delete("/{id}", pollHandler.DeletePoll)
			r.Post("/{id}/votes", voteHandler.CastVote)
		})

		r.Get("/summary", summaryHandler.GetSummary)
	})

	return r
}
