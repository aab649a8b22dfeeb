package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"cfdesk/internal/export"
	"cfdesk/internal/httpserver/deps"
	"cfdesk/internal/logger"
)

type exportParams struct {
	Format string
}

func (p exportParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Format, validation.Required, validation.In("csv", "json")),
	)
}

// Export streams the stored submission history as a downloadable CSV
// or JSON document, newest first.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := exportParams{Format: r.URL.Query().Get("format")}
		if params.Format == "" {
			params.Format = "csv"
		}
		if err := params.Validate(); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		format := export.Format(params.Format)

		onlyAccepted := r.URL.Query().Get("only_accepted") == "true"
		records, err := d.Store.Query(r.Context(), onlyAccepted)
		if err != nil {
			d.Logger.Error("failed to load submissions for export",
				logger.Error(err))
			respondWithError(w, http.StatusInternalServerError, "failed to load submissions")
			return
		}

		data, err := export.Render(records, format)
		if errors.Is(err, export.ErrNoSubmissions) {
			respondWithError(w, http.StatusNotFound, "no submissions to export")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "export failed")
			return
		}

		filename := fmt.Sprintf("submissions_%s_%s.%s",
			d.Handle, time.Now().Format("2006-01-02"), params.Format)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if format == export.FormatCSV {
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		} else {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
