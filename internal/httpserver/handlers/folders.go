package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"cfdesk/internal/domain"
	"cfdesk/internal/httpserver/deps"
	"cfdesk/internal/logger"
	redisstore "cfdesk/internal/store/redis"
)

type createFolderRequest struct {
	Title string `json:"title"`
}

func (req createFolderRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 100)),
	)
}

type addProblemRequest struct {
	ProblemID string `json:"problemId"`
}

func (req addProblemRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ProblemID, validation.Required),
	)
}

// ListFolders returns the system folders followed by the user's custom
// folders.
func ListFolders(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		folders := d.Catalog.SystemFolders()

		custom, err := d.Store.GetAllFolders(r.Context())
		if err != nil {
			d.Logger.Error("failed to load custom folders",
				logger.Error(err))
			respondWithError(w, http.StatusInternalServerError, "failed to load folders")
			return
		}

		respondWithJSON(w, http.StatusOK, append(folders, custom...))
	}
}

// CreateFolder creates an empty custom folder from a title.
func CreateFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createFolderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		folder := &domain.Folder{
			ID:       uuid.NewString(),
			Title:    strings.TrimSpace(req.Title),
			Slug:     slug.Make(req.Title),
			Problems: []domain.Problem{},
			IsCustom: true,
		}

		if err := d.Store.SaveFolder(r.Context(), folder); err != nil {
			d.Logger.Error("failed to save folder",
				logger.Error(err))
			respondWithError(w, http.StatusInternalServerError, "failed to save folder")
			return
		}

		respondWithJSON(w, http.StatusCreated, folder)
	}
}

// GetFolder returns one folder, system or custom.
func GetFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "folderID")

		if strings.HasPrefix(id, domain.SystemFolderPrefix) {
			for _, f := range d.Catalog.SystemFolders() {
				if f.ID == id {
					respondWithJSON(w, http.StatusOK, f)
					return
				}
			}
			respondWithError(w, http.StatusNotFound, "folder not found")
			return
		}

		folder, err := d.Store.GetFolder(r.Context(), id)
		if errors.Is(err, redisstore.ErrFolderNotFound) {
			respondWithError(w, http.StatusNotFound, "folder not found")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to load folder")
			return
		}
		respondWithJSON(w, http.StatusOK, folder)
	}
}

// RenameFolder gives a custom folder a new title and re-derives its
// slug. System folders take their titles from the tag registry and
// cannot be renamed.
func RenameFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "folderID")

		if strings.HasPrefix(id, domain.SystemFolderPrefix) {
			respondWithError(w, http.StatusForbidden, "system folders cannot be renamed")
			return
		}

		var req createFolderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		folder, err := d.Store.GetFolder(r.Context(), id)
		if errors.Is(err, redisstore.ErrFolderNotFound) {
			respondWithError(w, http.StatusNotFound, "folder not found")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to load folder")
			return
		}

		folder.Title = strings.TrimSpace(req.Title)
		folder.Slug = slug.Make(req.Title)

		if err := d.Store.SaveFolder(r.Context(), folder); err != nil {
			d.Logger.Error("failed to save folder",
				logger.Error(err))
			respondWithError(w, http.StatusInternalServerError, "failed to save folder")
			return
		}
		respondWithJSON(w, http.StatusOK, folder)
	}
}

// DeleteFolder removes a custom folder. System folders are regenerated
// from the catalog and cannot be deleted.
func DeleteFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "folderID")

		if strings.HasPrefix(id, domain.SystemFolderPrefix) {
			respondWithError(w, http.StatusForbidden, "system folders cannot be deleted")
			return
		}

		if _, err := d.Store.GetFolder(r.Context(), id); errors.Is(err, redisstore.ErrFolderNotFound) {
			respondWithError(w, http.StatusNotFound, "folder not found")
			return
		} else if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to load folder")
			return
		}

		if err := d.Store.DeleteFolder(r.Context(), id); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to delete folder")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// AddFolderProblem adds a catalog problem to a custom folder.
// Duplicates within a folder are rejected with 409.
func AddFolderProblem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "folderID")

		if strings.HasPrefix(id, domain.SystemFolderPrefix) {
			respondWithError(w, http.StatusForbidden, "system folders cannot be edited")
			return
		}

		var req addProblemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		problem, ok := d.Catalog.Get(req.ProblemID)
		if !ok {
			respondWithError(w, http.StatusNotFound, "problem not in catalog")
			return
		}

		folder, err := d.Store.GetFolder(r.Context(), id)
		if errors.Is(err, redisstore.ErrFolderNotFound) {
			respondWithError(w, http.StatusNotFound, "folder not found")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to load folder")
			return
		}

		if !folder.AddProblem(problem) {
			respondWithError(w, http.StatusConflict, "problem already in folder")
			return
		}

		if err := d.Store.SaveFolder(r.Context(), folder); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to save folder")
			return
		}
		respondWithJSON(w, http.StatusOK, folder)
	}
}

// RemoveFolderProblem removes a problem from a custom folder.
func RemoveFolderProblem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "folderID")
		problemID := chi.URLParam(r, "problemID")

		if strings.HasPrefix(id, domain.SystemFolderPrefix) {
			respondWithError(w, http.StatusForbidden, "system folders cannot be edited")
			return
		}

		folder, err := d.Store.GetFolder(r.Context(), id)
		if errors.Is(err, redisstore.ErrFolderNotFound) {
			respondWithError(w, http.StatusNotFound, "folder not found")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to load folder")
			return
		}

		if !folder.RemoveProblem(problemID) {
			respondWithError(w, http.StatusNotFound, "problem not in folder")
			return
		}

		if err := d.Store.SaveFolder(r.Context(), folder); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to save folder")
			return
		}
		respondWithJSON(w, http.StatusOK, folder)
	}
}
