package handlers

import (
	"net/http"
	"time"

	"cfdesk/internal/catalog"
	"cfdesk/internal/httpserver/deps"
	"cfdesk/internal/logger"
)

type catalogStatusResponse struct {
	Problems  int    `json:"problems"`
	FetchedAt string `json:"fetched_at,omitempty"`
	Stale     bool   `json:"stale"`
}

// CatalogStatus reports the snapshot size, its fetch time and whether
// the staleness policy considers it due for refresh.
func CatalogStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := catalogStatusResponse{
			Problems: d.Catalog.Count(),
			Stale:    d.Catalog.IsStale(catalog.DefaultTTL),
		}
		if at := d.Catalog.FetchedAt(); !at.IsZero() {
			resp.FetchedAt = at.Format(time.RFC3339)
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}

// CatalogRefresh triggers a manual catalog refresh. The refresher runs
// on one goroutine, so a second trigger while one is in flight gets a
// 429 instead of queueing.
func CatalogRefresh(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.RefreshTrigger <- struct{}{}:
			d.Logger.Info("manual catalog refresh triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			respondWithJSON(w, http.StatusAccepted, map[string]string{"status": "refresh triggered"})
		default:
			d.Logger.Warn("catalog refresh already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			respondWithError(w, http.StatusTooManyRequests, "refresh already in progress")
		}
	}
}
