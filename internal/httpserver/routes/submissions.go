package routes

import (
	"github.com/go-chi/chi/v5"

	"cfdesk/internal/httpserver/deps"
	"cfdesk/internal/httpserver/handlers"
)

func init() { Register(registerSubmissions) }

func registerSubmissions(r chi.Router, d deps.Deps) {
	r.Route("/submissions", func(r chi.Router) {
		r.Post("/sync", handlers.SubmissionSync(d))
		r.Get("/recent", handlers.SubmissionRecent(d))
		r.Get("/count", handlers.SubmissionCount(d))
		r.Delete("/", handlers.SubmissionClear(d))
	})
}
