// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	userstore "github.com/dalemusser/tasktracker/internal/app/store/users"
	"github.com/dalemusser/tasktracker/internal/app/system/authz"
	"github.com/dalemusser/tasktracker/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time initialization after the schema is in place and
// before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
	})

	if appCfg.SuperAdminEmail != "" {
		if err := ensureSuperAdmin(ctx, deps, appCfg.SuperAdminEmail, logger); err != nil {
			return err
		}
	}

	deps.AuditRetention.Start()
	return nil
}

// ensureSuperAdmin grants the superAdmin role to the user with email.
// A missing user is logged and skipped; the account must register first.
func ensureSuperAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)
	err := users.AddRole(ctx, email, authz.RoleSuperAdmin)
	if errors.Is(err, userstore.ErrNotFound) {
		logger.Warn("superadmin_email does not match a user; register first",
			zap.String("email", email))
		return nil
	}
	if err != nil {
		logger.Error("superadmin promotion failed", zap.String("email", email), zap.Error(err))
		return err
	}
	logger.Info("superadmin role ensured", zap.String("email", email))
	return nil
}
