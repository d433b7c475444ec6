// internal/app/features/tasks/routes.go
package tasks

import (
	"github.com/dalemusser/tasktracker/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	// Everything under /tasks requires a bearer token
	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireBearer)

		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)

		pr.Get("/{id}", h.ServeTask)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)

		// COMMENTS
		pr.Get("/{id}/comments", h.ServeComments)
		pr.Post("/{id}/comments", h.HandleAddComment)
	})

	return r
}
