package tasks

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/tasktracker/internal/app/policy/taskpolicy"
	"github.com/dalemusser/tasktracker/internal/app/system/apierr"
	"github.com/dalemusser/tasktracker/internal/app/system/authz"
	"github.com/dalemusser/tasktracker/internal/app/system/htmlsanitize"
	"github.com/dalemusser/tasktracker/internal/app/system/inputval"
	"github.com/dalemusser/tasktracker/internal/app/system/jsonio"
	"github.com/dalemusser/tasktracker/internal/app/system/timeouts"
	"github.com/dalemusser/tasktracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleCreate creates a task.
//
// Non-managers may only assign tasks to themselves; the assignee must
// exist. The caller is recorded as creator.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Write(w, r, h.Log, apierr.New(apierr.Unauthenticated, "Access denied. No token provided."))
		return
	}

	var in createInput
	if err := jsonio.Decode(w, r, &in); err != nil {
		apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, "Invalid request body"))
		return
	}
	in.Title = htmlsanitize.Text(in.Title)

	if res := inputval.Validate(in); res.HasErrors() {
		apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, res.First()))
		return
	}
	assignee, _ := primitive.ObjectIDFromHex(strings.TrimSpace(in.AssignedTo))

	task := models.Task{
		Title:         in.Title,
		EstimatedTime: htmlsanitize.Text(in.EstimatedTime),
		RemainingTime: htmlsanitize.Text(in.RemainingTime),
		AssignedTo:    assignee,
		Priority:      in.Priority,
		Status:        in.Status,
		CreatedBy:     uid,
	}
	if in.Date != "" {
		d, err := inputval.ParseDate(in.Date)
		if err != nil {
			apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, MsgInvalidDate))
			return
		}
		task.Date = &d
	}

	if !taskpolicy.CanAssign(r, assignee) {
		h.AuditLog.TaskAccessDenied(r.Context(), r, uid, nil, "create")
		apierr.Write(w, r, h.Log, apierr.New(apierr.PermissionDenied, MsgCannotAssign))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	exists, err := h.Users.Exists(ctx, assignee)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	if !exists {
		apierr.Write(w, r, h.Log, apierr.New(apierr.NotFound, MsgAssigneeNotFound))
		return
	}

	created, err := h.Tasks.Create(ctx, task)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	h.AuditLog.TaskCreated(ctx, r, uid, created.ID, created.AssignedTo, created.Title)
	h.Log.Debug("task created",
		zap.String("task_id", created.ID.Hex()),
		zap.String("assigned_to", created.AssignedTo.Hex()))

	jsonio.Write(w, http.StatusCreated, taskResponse{Message: "Task created successfully", Task: created})
}
