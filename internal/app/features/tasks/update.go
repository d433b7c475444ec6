package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/tasktracker/internal/app/policy/taskpolicy"
	taskstore "github.com/dalemusser/tasktracker/internal/app/store/tasks"
	"github.com/dalemusser/tasktracker/internal/app/system/apierr"
	"github.com/dalemusser/tasktracker/internal/app/system/authz"
	"github.com/dalemusser/tasktracker/internal/app/system/htmlsanitize"
	"github.com/dalemusser/tasktracker/internal/app/system/inputval"
	"github.com/dalemusser/tasktracker/internal/app/system/jsonio"
	"github.com/dalemusser/tasktracker/internal/app/system/taskstatus"
	"github.com/dalemusser/tasktracker/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// parseDateField interprets the raw "date" member: absent leaves the
// date alone, null clears it, a string sets it.
func parseDateField(raw json.RawMessage) (set *time.Time, clear bool, err error) {
	if len(raw) == 0 {
		return nil, false, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, true, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(s) == "" {
		return nil, true, nil
	}
	t, err := inputval.ParseDate(s)
	if err != nil {
		return nil, false, err
	}
	return &t, false, nil
}

// HandleUpdate changes the submitted fields of a task.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var in updateInput
	if err := jsonio.Decode(w, r, &in); err != nil {
		apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, "Invalid request body"))
		return
	}
	if in.Title != nil {
		t := htmlsanitize.Text(*in.Title)
		if t == "" {
			apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, MsgTitleRequired))
			return
		}
		in.Title = &t
	}
	if res := inputval.Validate(in); res.HasErrors() {
		apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, res.First()))
		return
	}
	date, clearDate, err := parseDateField(in.Date)
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, MsgInvalidDate))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cur, err := h.loadTask(ctx, id)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	info := infoOf(cur)
	if !taskpolicy.CanViewTask(r, info) {
		h.AuditLog.TaskAccessDenied(ctx, r, uid, &id, "update")
		apierr.Write(w, r, h.Log, apierr.New(apierr.PermissionDenied, MsgCannotEdit))
		return
	}
	if !taskpolicy.CanEditTask(r, info) {
		apierr.Write(w, r, h.Log, apierr.New(apierr.Conflict, MsgTaskLocked))
		return
	}

	upd := taskstore.Update{
		Title:        in.Title,
		Priority:     in.Priority,
		Status:       in.Status,
		Date:         date,
		ClearDate:    clearDate,
		ExpectStatus: cur.Status,
	}
	var changed []string
	if in.Title != nil {
		changed = append(changed, "title")
	}
	if in.EstimatedTime != nil {
		v := htmlsanitize.Text(*in.EstimatedTime)
		upd.EstimatedTime = &v
		changed = append(changed, "estimatedTime")
	}
	if in.RemainingTime != nil {
		v := htmlsanitize.Text(*in.RemainingTime)
		upd.RemainingTime = &v
		changed = append(changed, "remainingTime")
	}
	if in.Priority != nil {
		changed = append(changed, "priority")
	}
	if date != nil || clearDate {
		changed = append(changed, "date")
	}

	if in.AssignedTo != nil {
		assignee, _ := primitive.ObjectIDFromHex(strings.TrimSpace(*in.AssignedTo))
		if assignee != cur.AssignedTo {
			if !taskpolicy.CanAssign(r, assignee) {
				h.AuditLog.TaskAccessDenied(ctx, r, uid, &id, "reassign")
				apierr.Write(w, r, h.Log, apierr.New(apierr.PermissionDenied, MsgCannotAssign))
				return
			}
			exists, err := h.Users.Exists(ctx, assignee)
			if err != nil {
				apierr.Write(w, r, h.Log, err)
				return
			}
			if !exists {
				apierr.Write(w, r, h.Log, apierr.New(apierr.NotFound, MsgAssigneeNotFound))
				return
			}
			upd.AssignedTo = &assignee
			changed = append(changed, "assignedTo")
		}
	}

	toStatus := cur.Status
	if in.Status != nil {
		toStatus = *in.Status
		if toStatus != cur.Status {
			changed = append(changed, "status")
		}
		if err := taskstatus.Check(cur.Status, toStatus, authz.IsPrivileged(r)); err != nil {
			apierr.Write(w, r, h.Log, apierr.Wrap(apierr.Conflict,
				"Cannot change status from "+cur.Status+" to "+toStatus+".", err))
			return
		}
	}

	updated, err := h.Tasks.Update(ctx, id, upd)
	switch {
	case errors.Is(err, taskstore.ErrNotFound):
		apierr.Write(w, r, h.Log, apierr.New(apierr.NotFound, MsgTaskNotFound))
		return
	case errors.Is(err, taskstore.ErrStatusChanged):
		apierr.Write(w, r, h.Log, apierr.Wrap(apierr.Conflict, MsgStatusChanged, err))
		return
	case err != nil:
		apierr.Write(w, r, h.Log, err)
		return
	}

	h.AuditLog.TaskUpdated(ctx, r, uid, id, strings.Join(changed, ","), cur.Status, toStatus)
	jsonio.Write(w, http.StatusOK, taskResponse{Message: "Task updated successfully", Task: *updated})
}
