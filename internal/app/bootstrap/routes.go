// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	auditfeature "github.com/dalemusser/tasktracker/internal/app/features/auditlog"
	authfeature "github.com/dalemusser/tasktracker/internal/app/features/authapi"
	healthfeature "github.com/dalemusser/tasktracker/internal/app/features/health"
	tasksfeature "github.com/dalemusser/tasktracker/internal/app/features/tasks"
	"github.com/dalemusser/tasktracker/internal/app/store/audit"
	"github.com/dalemusser/tasktracker/internal/app/system/apierr"
	"github.com/dalemusser/tasktracker/internal/app/system/auditlog"
	"github.com/dalemusser/tasktracker/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. The router carries CORS, the health check and
// the versioned JSON API:
//
//	/health
//	/api/v1/auth/...
//	/api/v1/tasks/...
//	/api/v1/audit
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTIssuer, appCfg.TokenTTL, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	auditLog := auditlog.New(
		audit.New(deps.MongoDatabase),
		deps.AuditSink.Wrap(logger.Named("audit")),
		auditlog.Config{Auth: appCfg.AuditLogAuth, Tasks: appCfg.AuditLogTasks},
	)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appCfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Total-Count", "X-Page", "X-Limit"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api/v1", func(api chi.Router) {
		authHandler := authfeature.NewHandler(deps.MongoDatabase, tokens, auditLog, logger)
		api.Mount("/auth", authfeature.Routes(authHandler, appCfg.AuthRateLimit))

		tasksHandler := tasksfeature.NewHandler(deps.MongoDatabase, auditLog, logger)
		api.Mount("/tasks", tasksfeature.Routes(tasksHandler, tokens))

		auditHandler := auditfeature.NewHandler(deps.MongoDatabase, logger)
		api.Mount("/audit", auditfeature.Routes(auditHandler, tokens))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apierr.Write(w, r, logger, apierr.New(apierr.NotFound, "Route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apierr.Write(w, r, logger, apierr.New(apierr.InvalidArgument, "Method not allowed"))
	})

	return r, nil
}
