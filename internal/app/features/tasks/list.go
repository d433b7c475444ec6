package tasks

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/tasktracker/internal/app/policy/taskpolicy"
	taskstore "github.com/dalemusser/tasktracker/internal/app/store/tasks"
	"github.com/dalemusser/tasktracker/internal/app/system/apierr"
	"github.com/dalemusser/tasktracker/internal/app/system/authz"
	"github.com/dalemusser/tasktracker/internal/app/system/inputval"
	"github.com/dalemusser/tasktracker/internal/app/system/jsonio"
	"github.com/dalemusser/tasktracker/internal/app/system/paging"
	"github.com/dalemusser/tasktracker/internal/app/system/timeouts"
	"github.com/dalemusser/tasktracker/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// parseFilter reads the optional list filters. Returned errors are
// *apierr.Error.
func parseFilter(r *http.Request) (requested primitive.ObjectID, f taskstore.Filter, err error) {
	if raw := query.Get(r, "assignedTo"); raw != "" {
		requested, err = primitive.ObjectIDFromHex(raw)
		if err != nil {
			return requested, f, apierr.New(apierr.InvalidArgument, MsgInvalidAssignedTo)
		}
	}
	if s := query.Get(r, "status"); s != "" {
		if !models.IsValidStatus(s) {
			return requested, f, apierr.New(apierr.InvalidArgument, "Invalid status filter")
		}
		f.Status = s
	}
	if p := query.Get(r, "priority"); p != "" {
		if !models.IsValidPriority(p) {
			return requested, f, apierr.New(apierr.InvalidArgument, "Invalid priority filter")
		}
		f.Priority = p
	}
	if s := query.Get(r, "from"); s != "" {
		t, perr := inputval.ParseDate(s)
		if perr != nil {
			return requested, f, apierr.New(apierr.InvalidArgument, MsgInvalidDate)
		}
		f.From = &t
	}
	if s := query.Get(r, "to"); s != "" {
		t, perr := inputval.ParseDate(s)
		if perr != nil {
			return requested, f, apierr.New(apierr.InvalidArgument, MsgInvalidDate)
		}
		// a bare date covers the whole day
		if len(s) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = &t
	}
	f.Search = query.Get(r, "q")
	return requested, f, nil
}

// ServeList lists tasks. Managers see everyone's tasks (optionally one
// assignee's); other users see only their own. The body is a JSON array;
// paging totals are in X-Total-Count, X-Page and X-Limit.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	requested, f, err := parseFilter(r)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	scope := taskpolicy.CanListTasks(r, requested)
	if !scope.CanList {
		if _, _, uid, ok := authz.UserCtx(r); ok {
			h.AuditLog.TaskAccessDenied(r.Context(), r, uid, nil, "list")
		}
		apierr.Write(w, r, h.Log, apierr.New(apierr.PermissionDenied, MsgCannotList))
		return
	}
	if !scope.AllUsers {
		f.AssignedTo = &scope.AssigneeID
	}

	pg := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	total, err := h.Tasks.Count(ctx, f)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	views, err := h.Tasks.List(ctx, f, pg.Skip(), int64(pg.Limit))
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	pg.SetHeaders(w, total)
	jsonio.Write(w, http.StatusOK, views)
}
