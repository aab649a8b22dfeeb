package routes

import (
	"github.com/go-chi/chi/v5"

	"cfdesk/internal/httpserver/deps"
	"cfdesk/internal/httpserver/handlers"
)

func init() { Register(registerFolders) }

func registerFolders(r chi.Router, d deps.Deps) {
	r.Route("/folders", func(r chi.Router) {
		r.Get("/", handlers.ListFolders(d))
		r.Post("/", handlers.CreateFolder(d))
		r.Get("/{folderID}", handlers.GetFolder(d))
		r.Patch("/{folderID}", handlers.RenameFolder(d))
		r.Delete("/{folderID}", handlers.DeleteFolder(d))
		r.Post("/{folderID}/problems", handlers.AddFolderProblem(d))
		r.Delete("/{folderID}/problems/{problemID}", handlers.RemoveFolderProblem(d))
	})
}
