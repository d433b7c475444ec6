// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables (TASKTRACKER_*),
// configuration files, or command-line flags (loaded in LoadConfig).
// Listen address, TLS and the log level belong to WAFFLE's CoreConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session tokens
	JWTSecret string // HS256 signing key; required
	JWTIssuer string
	TokenTTL  time.Duration

	// HTTP surface
	CORSAllowedOrigins []string
	AuthRateLimit      int // requests per minute per IP on login/register; 0 disables

	// Audit logging
	AuditLogAuth   string // all, db, log or off
	AuditLogTasks  string
	AuditLogFile   string        // optional rotating JSON file
	AuditRetention time.Duration // purge events older than this; 0 keeps forever

	// Database deadlines applied inside handlers
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration

	// SuperAdmin bootstrap
	SuperAdminEmail string
}
