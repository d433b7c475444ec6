// internal/app/features/authapi/handler.go
package authapi

import (
	userstore "github.com/dalemusser/tasktracker/internal/app/store/users"
	"github.com/dalemusser/tasktracker/internal/app/system/auditlog"
	"github.com/dalemusser/tasktracker/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves registration, login and user lookups.
type Handler struct {
	Users    *userstore.Store
	Tokens   *auth.TokenManager
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

// NewHandler builds a Handler over db.
func NewHandler(db *mongo.Database, tokens *auth.TokenManager, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    userstore.New(db),
		Tokens:   tokens,
		AuditLog: audit,
		Log:      logger,
	}
}
