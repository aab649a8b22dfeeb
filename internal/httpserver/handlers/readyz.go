package handlers

import (
	"context"
	"net/http"
	"time"

	"cfdesk/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Redis bool   `json:"redis"`
	Error string `json:"error,omitempty"`
}

// Readyz reports readiness: the process is up and redis answers a ping.
// A cold catalog does not make the app unready; it works offline from
// the last persisted snapshot.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := d.RedisClient.Ping(ctx).Err(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, readyzResponse{
				Ready: false,
				Redis: false,
				Error: err.Error(),
			})
			return
		}

		respondWithJSON(w, http.StatusOK, readyzResponse{Ready: true, Redis: true})
	}
}
