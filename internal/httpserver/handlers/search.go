package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"cfdesk/internal/domain"
	"cfdesk/internal/httpserver/deps"
	"cfdesk/internal/logger"
)

// parseFilter reads q, min_rating and max_rating from the query string.
// Absent or malformed rating bounds resolve to zero, meaning unbounded.
func parseFilter(r *http.Request) domain.SearchFilter {
	q := r.URL.Query()
	return domain.SearchFilter{
		Query:     strings.TrimSpace(q.Get("q")),
		MinRating: atoiOrZero(q.Get("min_rating")),
		MaxRating: atoiOrZero(q.Get("max_rating")),
	}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Search ranks the user's folder problems and the full catalog against
// the filter and returns both lists.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := parseFilter(r)

		folders := d.Catalog.SystemFolders()
		custom, err := d.Store.GetAllFolders(r.Context())
		if err != nil {
			d.Logger.Warn("failed to load custom folders for search",
				logger.Error(err))
		} else {
			folders = append(folders, custom...)
		}

		result := domain.Search(filter, folders, d.Catalog.All())

		d.Logger.Debug("search request",
			logger.String("query", filter.Query),
			logger.Int("my", len(result.My)),
			logger.Int("global", len(result.Global)))

		respondWithJSON(w, http.StatusOK, result)
	}
}
