// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/tasktracker/internal/app/system/auditlog"
	"github.com/dalemusser/tasktracker/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// AuditSink is nil unless audit_log_file is set.
	AuditSink *auditlog.FileSink
	// AuditRetention is nil unless audit_retention is set.
	AuditRetention *workers.AuditRetention
}
