package routes

import (
	"github.com/go-chi/chi/v5"

	"cfdesk/internal/httpserver/deps"
	"cfdesk/internal/httpserver/handlers"
)

func init() { Register(registerCatalog) }

func registerCatalog(r chi.Router, d deps.Deps) {
	r.Get("/catalog", handlers.CatalogStatus(d))
	r.Post("/catalog/refresh", handlers.CatalogRefresh(d))
}
