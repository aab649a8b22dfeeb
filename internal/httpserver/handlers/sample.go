package handlers

import (
	"errors"
	"net/http"

	"cfdesk/internal/domain"
	"cfdesk/internal/httpserver/deps"
	"cfdesk/internal/logger"
)

// Sample returns one random catalog problem matching the filter.
// With exclude_solved=true, problems the user already has an accepted
// submission for are removed from the pool first.
func Sample(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := parseFilter(r)

		var excludeIDs map[string]bool
		if r.URL.Query().Get("exclude_solved") == "true" {
			accepted, err := d.Store.Query(r.Context(), true)
			if err != nil {
				d.Logger.Error("failed to load solved problems",
					logger.Error(err))
				respondWithError(w, http.StatusInternalServerError, "failed to load solved problems")
				return
			}
			excludeIDs = make(map[string]bool, len(accepted))
			for _, s := range accepted {
				excludeIDs[s.ProblemID()] = true
			}
		}

		problem, err := domain.Sample(filter, d.Catalog.All(), excludeIDs)
		switch {
		case errors.Is(err, domain.ErrCatalogEmpty):
			respondWithError(w, http.StatusNotFound, "catalog is empty, refresh it first")
			return
		case errors.Is(err, domain.ErrPoolEmpty):
			respondWithError(w, http.StatusNotFound, "no problem matches the filter")
			return
		case err != nil:
			respondWithError(w, http.StatusInternalServerError, "sampling failed")
			return
		}

		respondWithJSON(w, http.StatusOK, problem)
	}
}
