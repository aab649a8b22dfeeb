package routes

import (
	"github.com/go-chi/chi/v5"

	"cfdesk/internal/httpserver/deps"
	"cfdesk/internal/httpserver/handlers"
)

func init() { Register(registerExport) }

func registerExport(r chi.Router, d deps.Deps) {
	r.Get("/export", handlers.Export(d))
}
