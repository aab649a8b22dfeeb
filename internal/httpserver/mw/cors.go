package mw

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the local browser client to call the API. With no
// configured origins every origin is accepted, which is fine for a
// tool bound to localhost.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler
}
