package tasks

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/tasktracker/internal/app/policy/taskpolicy"
	taskstore "github.com/dalemusser/tasktracker/internal/app/store/tasks"
	"github.com/dalemusser/tasktracker/internal/app/system/apierr"
	"github.com/dalemusser/tasktracker/internal/app/system/authz"
	"github.com/dalemusser/tasktracker/internal/app/system/jsonio"
	"github.com/dalemusser/tasktracker/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete removes a task and its comments. Only the creator or a
// manager may delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Write(w, r, h.Log, apierr.New(apierr.Unauthenticated, "Access denied. No token provided."))
		return
	}
	id, err := taskIDParam(r)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, err := h.loadTask(ctx, id)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	if !taskpolicy.CanDeleteTask(r, infoOf(t)) {
		h.AuditLog.TaskAccessDenied(ctx, r, uid, &id, "delete")
		apierr.Write(w, r, h.Log, apierr.New(apierr.PermissionDenied, MsgCannotDelete))
		return
	}

	if err := h.Tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, taskstore.ErrNotFound) {
			apierr.Write(w, r, h.Log, apierr.New(apierr.NotFound, MsgTaskNotFound))
			return
		}
		apierr.Write(w, r, h.Log, err)
		return
	}

	removed, err := h.Comments.DeleteForTask(ctx, id)
	if err != nil {
		// the task is gone; orphaned comments are unreachable
		h.Log.Warn("delete task comments failed",
			zap.String("task_id", id.Hex()),
			zap.Error(err))
	}

	h.AuditLog.TaskDeleted(ctx, r, uid, id, t.Title, removed)
	jsonio.Write(w, http.StatusOK, messageResponse{Message: "Task deleted successfully"})
}
