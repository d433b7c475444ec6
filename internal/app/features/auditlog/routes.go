// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/dalemusser/tasktracker/internal/app/system/auth"
	"github.com/dalemusser/tasktracker/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the audit log under the path where this router is
// mounted (typically "/api/v1/audit"). Managers and super admins only.
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireBearer)
		pr.Use(tm.RequireRole(authz.PrivilegedRoles...))

		pr.Get("/", h.ServeList)
	})

	return r
}
