// internal/app/features/authapi/routes.go
package authapi

import (
	"net/http"
	"time"

	"github.com/dalemusser/tasktracker/internal/app/system/apierr"
	"github.com/dalemusser/tasktracker/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MsgRateLimited is returned once a client exceeds the auth rate limit.
const MsgRateLimited = "Too many requests, please try again later."

// Routes mounts the auth endpoints. perMinute limits login and
// registration attempts per client IP; zero disables the limit.
func Routes(h *Handler, perMinute int) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pub chi.Router) {
		if perMinute > 0 {
			pub.Use(httprate.Limit(perMinute, time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(h.rateLimited),
			))
		}
		pub.Post("/register", h.HandleRegister)
		pub.Post("/login", h.HandleLogin)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(h.Tokens.RequireBearer)
		pr.Get("/me", h.ServeMe)
		pr.With(h.Tokens.RequireRole(authz.PrivilegedRoles...)).Get("/getAllUsers", h.ServeAllUsers)
	})

	return r
}

func (h *Handler) rateLimited(w http.ResponseWriter, r *http.Request) {
	h.AuditLog.RateLimited(r.Context(), r)
	apierr.Write(w, r, h.Log, apierr.New(apierr.ResourceExhausted, MsgRateLimited))
}
