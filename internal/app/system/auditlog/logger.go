// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/tasktracker/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Destinations accepted by each Config field.
const (
	All = "all" // MongoDB + zap
	DB  = "db"  // MongoDB only
	Log = "log" // zap only
	Off = "off"
)

// Config selects where each category of audit event goes.
type Config struct {
	// Auth covers login and registration.
	Auth string
	// Tasks covers task and comment mutations.
	Tasks string
}

// IsValidDestination reports whether s is a recognised destination.
func IsValidDestination(s string) bool {
	switch s {
	case All, DB, Log, Off:
		return true
	}
	return false
}

// Logger records audit events to MongoDB (via audit.Store) and zap.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	return &Logger{store: store, zapLog: zapLog, config: config}
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.TaskID != nil {
		fields = append(fields, zap.String("task_id", event.TaskID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

func (l *Logger) destination(category string) string {
	switch category {
	case audit.CategoryAuth:
		return l.config.Auth
	case audit.CategoryTasks:
		return l.config.Tasks
	}
	return All
}

// Log records event according to its category's destination. A nil
// Logger is a no-op so handlers under test can omit it.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}
	dest := l.destination(event.Category)
	if dest == Off {
		return
	}
	if dest == All || dest == Log || dest == "" {
		l.logToZap(event)
	}
	if (dest == All || dest == DB || dest == "") && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType))
		}
	}
}

func (l *Logger) event(r *http.Request, category, eventType string, success bool) audit.Event {
	return audit.Event{
		Category:  category,
		EventType: eventType,
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
		Success:   success,
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	if l == nil {
		return
	}
	e := l.event(r, audit.CategoryAuth, audit.EventLoginSuccess, true)
	e.UserID = &userID
	e.Details = map[string]string{"email": email}
	l.Log(ctx, e)
}

// LoginFailedUserNotFound logs a login attempt for an unknown email.
func (l *Logger) LoginFailedUserNotFound(ctx context.Context, r *http.Request, attemptedEmail string) {
	if l == nil {
		return
	}
	e := l.event(r, audit.CategoryAuth, audit.EventLoginFailedUserNotFound, false)
	e.FailureReason = "user not found"
	e.Details = map[string]string{"attempted_email": attemptedEmail}
	l.Log(ctx, e)
}

// LoginFailedWrongPassword logs a failed login due to wrong password.
func (l *Logger) LoginFailedWrongPassword(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	if l == nil {
		return
	}
	e := l.event(r, audit.CategoryAuth, audit.EventLoginFailedWrongPassword, false)
	e.UserID = &userID
	e.FailureReason = "wrong password"
	e.Details = map[string]string{"email": email}
	l.Log(ctx, e)
}

// RateLimited logs a rejected auth request.
func (l *Logger) RateLimited(ctx context.Context, r *http.Request) {
	if l == nil {
		return
	}
	e := l.event(r, audit.CategoryAuth, audit.EventLoginFailedRateLimit, false)
	e.FailureReason = "rate limit exceeded"
	e.Details = map[string]string{"path": r.URL.Path}
	l.Log(ctx, e)
}

// UserRegistered logs a new account.
func (l *Logger) UserRegistered(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string, roles []string) {
	if l == nil {
		return
	}
	e := l.event(r, audit.CategoryAuth, audit.EventUserRegistered, true)
	e.UserID = &userID
	e.Details = map[string]string{
		"email": email,
		"roles": strings.Join(roles, ","),
	}
	l.Log(ctx, e)
}

// RegisterFailedDuplicate logs a registration for an email already in use.
func (l *Logger) RegisterFailedDuplicate(ctx context.Context, r *http.Request, email string) {
	if l == nil {
		return
	}
	e := l.event(r, audit.CategoryAuth, audit.EventRegisterFailedDuplicate, false)
	e.FailureReason = "email already registered"
	e.Details = map[string]string{"email": email}
	l.Log(ctx, e)
}

// --- Task Events ---

func (l *Logger) taskEvent(ctx context.Context, r *http.Request, eventType string, actorID, taskID primitive.ObjectID, details map[string]string) {
	if l == nil {
		return
	}
	e := l.event(r, audit.CategoryTasks, eventType, true)
	e.ActorID = &actorID
	e.TaskID = &taskID
	e.Details = details
	l.Log(ctx, e)
}

// TaskCreated logs a new task.
func (l *Logger) TaskCreated(ctx context.Context, r *http.Request, actorID, taskID, assigneeID primitive.ObjectID, title string) {
	l.taskEvent(ctx, r, audit.EventTaskCreated, actorID, taskID, map[string]string{
		"title":       title,
		"assigned_to": assigneeID.Hex(),
	})
}

// TaskUpdated logs a change; fieldsChanged is a comma-separated list.
func (l *Logger) TaskUpdated(ctx context.Context, r *http.Request, actorID, taskID primitive.ObjectID, fieldsChanged, fromStatus, toStatus string) {
	details := map[string]string{"fields_changed": fieldsChanged}
	if fromStatus != toStatus {
		details["from_status"] = fromStatus
		details["to_status"] = toStatus
	}
	l.taskEvent(ctx, r, audit.EventTaskUpdated, actorID, taskID, details)
}

// TaskDeleted logs a deletion together with the comments it removed.
func (l *Logger) TaskDeleted(ctx context.Context, r *http.Request, actorID, taskID primitive.ObjectID, title string, commentsRemoved int64) {
	l.taskEvent(ctx, r, audit.EventTaskDeleted, actorID, taskID, map[string]string{
		"title":            title,
		"comments_removed": strconv.FormatInt(commentsRemoved, 10),
	})
}

// CommentAdded logs a comment posted on a task.
func (l *Logger) CommentAdded(ctx context.Context, r *http.Request, actorID, taskID, commentID, authorID primitive.ObjectID) {
	l.taskEvent(ctx, r, audit.EventCommentAdded, actorID, taskID, map[string]string{
		"comment_id": commentID.Hex(),
		"author_id":  authorID.Hex(),
	})
}

// TaskAccessDenied logs a policy refusal on a task operation.
func (l *Logger) TaskAccessDenied(ctx context.Context, r *http.Request, actorID primitive.ObjectID, taskID *primitive.ObjectID, operation string) {
	if l == nil {
		return
	}
	e := l.event(r, audit.CategoryTasks, audit.EventTaskAccessDeny, false)
	e.ActorID = &actorID
	e.TaskID = taskID
	e.FailureReason = "not permitted"
	e.Details = map[string]string{"operation": operation}
	l.Log(ctx, e)
}
