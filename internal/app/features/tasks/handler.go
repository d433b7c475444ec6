// internal/app/features/tasks/handler.go
package tasks

import (
	commentstore "github.com/dalemusser/tasktracker/internal/app/store/comments"
	taskstore "github.com/dalemusser/tasktracker/internal/app/store/tasks"
	userstore "github.com/dalemusser/tasktracker/internal/app/store/users"
	"github.com/dalemusser/tasktracker/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the task and comment endpoints.
type Handler struct {
	Tasks    *taskstore.Store
	Comments *commentstore.Store
	Users    *userstore.Store
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Tasks:    taskstore.New(db),
		Comments: commentstore.New(db),
		Users:    userstore.New(db),
		AuditLog: audit,
		Log:      logger,
	}
}
