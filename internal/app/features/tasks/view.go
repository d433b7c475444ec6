package tasks

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/tasktracker/internal/app/policy/taskpolicy"
	taskstore "github.com/dalemusser/tasktracker/internal/app/store/tasks"
	"github.com/dalemusser/tasktracker/internal/app/system/apierr"
	"github.com/dalemusser/tasktracker/internal/app/system/jsonio"
	"github.com/dalemusser/tasktracker/internal/app/system/timeouts"
	"github.com/dalemusser/tasktracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func infoOf(t *models.Task) taskpolicy.TaskInfo {
	return taskpolicy.TaskInfo{AssignedTo: t.AssignedTo, CreatedBy: t.CreatedBy, Status: t.Status}
}

// loadTask maps a missing task to 404.
func (h *Handler) loadTask(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	t, err := h.Tasks.GetByID(ctx, id)
	if errors.Is(err, taskstore.ErrNotFound) {
		return nil, apierr.New(apierr.NotFound, MsgTaskNotFound)
	}
	return t, err
}

// ServeTask returns one task with its assignee joined.
func (h *Handler) ServeTask(w http.ResponseWriter, r *http.Request) {
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
	if !taskpolicy.CanViewTask(r, infoOf(t)) {
		apierr.Write(w, r, h.Log, apierr.New(apierr.PermissionDenied, MsgCannotView))
		return
	}

	v, err := h.Tasks.GetView(ctx, id)
	if errors.Is(err, taskstore.ErrNotFound) {
		apierr.Write(w, r, h.Log, apierr.New(apierr.NotFound, MsgTaskNotFound))
		return
	}
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	jsonio.Write(w, http.StatusOK, v)
}
