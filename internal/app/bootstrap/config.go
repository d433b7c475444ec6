// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/tasktracker/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the task tracker.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: TASKTRACKER_MONGO_URI, TASKTRACKER_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "task_tracker", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size (default: 5)"},

	// Session tokens
	{Name: "jwt_secret", Default: "", Desc: "HS256 signing secret for session tokens (required, 32+ chars)"},
	{Name: "jwt_issuer", Default: "tasktracker", Desc: "Issuer claim placed in and required of session tokens"},
	{Name: "token_ttl", Default: "24h", Desc: "Session token lifetime (e.g., 24h, 90m)"},

	// HTTP
	{Name: "cors_allowed_origins", Default: "http://localhost:5173", Desc: "Comma-separated list of allowed CORS origins"},
	{Name: "auth_rate_limit", Default: 20, Desc: "Login/register requests per minute per IP (0 disables)"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_tasks", Default: "all", Desc: "Task event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_file", Default: "", Desc: "Optional path of a rotating JSON file that also receives audit events"},
	{Name: "audit_retention", Default: "0", Desc: "Delete audit events older than this (e.g., 2160h); 0 keeps them forever"},

	// Database deadlines
	{Name: "timeout_short", Default: "5s", Desc: "Deadline for single-document database operations"},
	{Name: "timeout_medium", Default: "10s", Desc: "Deadline for list and count queries"},

	// SuperAdmin bootstrap
	{Name: "superadmin_email", Default: "", Desc: "Email of an existing user to promote to superAdmin on startup"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// TASKTRACKER_* environment variables and flags, merged with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TASKTRACKER", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),
		JWTIssuer: appValues.String("jwt_issuer"),
		TokenTTL:  appValues.Duration("token_ttl", 24*time.Hour),

		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),
		AuthRateLimit:      appValues.Int("auth_rate_limit"),

		AuditLogAuth:   strings.ToLower(appValues.String("audit_log_auth")),
		AuditLogTasks:  strings.ToLower(appValues.String("audit_log_tasks")),
		AuditLogFile:   appValues.String("audit_log_file"),
		AuditRetention: appValues.Duration("audit_retention", 0),

		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),

		SuperAdminEmail: appValues.String("superadmin_email"),
	}

	return coreCfg, appCfg, nil
}

// splitList turns "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// There is no fallback signing secret: startup fails when jwt_secret is
// empty.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return errors.New("mongo_database must not be empty")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}

	if appCfg.JWTSecret == "" {
		return errors.New("jwt_secret is required (set TASKTRACKER_JWT_SECRET)")
	}
	if len(appCfg.JWTSecret) < 32 {
		logger.Warn("jwt_secret is shorter than 32 characters")
	}
	if appCfg.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive, got %s", appCfg.TokenTTL)
	}

	if appCfg.AuditRetention < 0 {
		return fmt.Errorf("audit_retention must be >= 0, got %s", appCfg.AuditRetention)
	}

	if appCfg.AuthRateLimit < 0 {
		return fmt.Errorf("auth_rate_limit must be >= 0, got %d", appCfg.AuthRateLimit)
	}

	for key, v := range map[string]string{
		"audit_log_auth":  appCfg.AuditLogAuth,
		"audit_log_tasks": appCfg.AuditLogTasks,
	} {
		if !auditlog.IsValidDestination(v) {
			return fmt.Errorf("%s must be one of all, db, log, off; got %q", key, v)
		}
	}

	return nil
}
