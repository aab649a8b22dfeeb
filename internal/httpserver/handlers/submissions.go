package handlers

import (
	"net/http"

	"cfdesk/internal/httpserver/deps"
	"cfdesk/internal/logger"
)

// SubmissionSync triggers a manual submission sync. Like the catalog
// refresh, a trigger while one is in flight gets a 429.
func SubmissionSync(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.SyncTrigger <- struct{}{}:
			d.Logger.Info("manual submission sync triggered via endpoint",
				logger.String("handle", d.Handle))
			respondWithJSON(w, http.StatusAccepted, map[string]string{"status": "sync triggered"})
		default:
			d.Logger.Warn("submission sync already in progress")
			respondWithError(w, http.StatusTooManyRequests, "sync already in progress")
		}
	}
}

// SubmissionCount returns how many submissions are stored.
func SubmissionCount(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := d.Store.Count(r.Context())
		if err != nil {
			d.Logger.Error("failed to count submissions",
				logger.Error(err))
			respondWithError(w, http.StatusInternalServerError, "failed to count submissions")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]int64{"count": count})
	}
}

// SubmissionRecent returns the newest stored submissions, most recent
// first. The limit parameter defaults to 20.
func SubmissionRecent(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := atoiOrZero(r.URL.Query().Get("limit"))
		if limit == 0 {
			limit = 20
		}

		records, err := d.Store.Recent(r.Context(), limit)
		if err != nil {
			d.Logger.Error("failed to load recent submissions",
				logger.Error(err))
			respondWithError(w, http.StatusInternalServerError, "failed to load submissions")
			return
		}
		respondWithJSON(w, http.StatusOK, records)
	}
}

// SubmissionClear deletes every stored submission. The next sync
// repopulates the store from the remote history.
func SubmissionClear(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Store.Clear(r.Context()); err != nil {
			d.Logger.Error("failed to clear submissions",
				logger.Error(err))
			respondWithError(w, http.StatusInternalServerError, "failed to clear submissions")
			return
		}
		d.Logger.Info("submission store cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}
