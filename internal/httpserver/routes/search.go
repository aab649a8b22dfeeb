package routes

import (
	"github.com/go-chi/chi/v5"

	"cfdesk/internal/httpserver/deps"
	"cfdesk/internal/httpserver/handlers"
)

func init() { Register(registerSearch) }

func registerSearch(r chi.Router, d deps.Deps) {
	r.Get("/search", handlers.Search(d))
	r.Get("/sample", handlers.Sample(d))
}
