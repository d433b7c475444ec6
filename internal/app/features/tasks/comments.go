package tasks

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/tasktracker/internal/app/policy/taskpolicy"
	commentstore "github.com/dalemusser/tasktracker/internal/app/store/comments"
	"github.com/dalemusser/tasktracker/internal/app/system/apierr"
	"github.com/dalemusser/tasktracker/internal/app/system/authz"
	"github.com/dalemusser/tasktracker/internal/app/system/htmlsanitize"
	"github.com/dalemusser/tasktracker/internal/app/system/inputval"
	"github.com/dalemusser/tasktracker/internal/app/system/jsonio"
	"github.com/dalemusser/tasktracker/internal/app/system/timeouts"
	"github.com/dalemusser/tasktracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleAddComment posts feedback on a task. The author defaults to the
// caller; managers may attribute a comment to another user.
func (h *Handler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Write(w, r, h.Log, apierr.New(apierr.Unauthenticated, "Access denied. No token provided."))
		return
	}
	taskID, err := taskIDParam(r)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	var in commentInput
	if err := jsonio.Decode(w, r, &in); err != nil {
		apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, "Invalid request body"))
		return
	}

	author := uid
	if in.User != nil && strings.TrimSpace(*in.User) != "" {
		author, err = primitive.ObjectIDFromHex(strings.TrimSpace(*in.User))
		if err != nil {
			apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, MsgInvalidUserID))
			return
		}
		if !taskpolicy.CanCommentAs(r, author) {
			apierr.Write(w, r, h.Log, apierr.New(apierr.PermissionDenied, MsgCannotCommentAs))
			return
		}
	}

	in.Comment = htmlsanitize.Text(in.Comment)
	if in.Comment == "" {
		apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, MsgCommentRequired))
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, res.First()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, err := h.loadTask(ctx, taskID)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	if !taskpolicy.CanViewTask(r, infoOf(t)) {
		h.AuditLog.TaskAccessDenied(ctx, r, uid, &taskID, "comment")
		apierr.Write(w, r, h.Log, apierr.New(apierr.PermissionDenied, MsgCannotView))
		return
	}

	exists, err := h.Users.Exists(ctx, author)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	if !exists {
		apierr.Write(w, r, h.Log, apierr.New(apierr.NotFound, MsgAuthorNotFound))
		return
	}

	c, err := h.Comments.Create(ctx, models.TaskComment{TaskID: taskID, UserID: author, Comment: in.Comment})
	if errors.Is(err, commentstore.ErrEmpty) {
		apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, MsgCommentRequired))
		return
	}
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	h.AuditLog.CommentAdded(ctx, r, uid, taskID, c.ID, author)
	jsonio.Write(w, http.StatusCreated, commentResponse{Message: "Comment added successfully", Comment: c})
}

// ServeComments lists a task's comments, newest first.
func (h *Handler) ServeComments(w http.ResponseWriter, r *http.Request) {
	taskID, err := taskIDParam(r)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	t, err := h.loadTask(ctx, taskID)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	if !taskpolicy.CanViewTask(r, infoOf(t)) {
		apierr.Write(w, r, h.Log, apierr.New(apierr.PermissionDenied, MsgCannotView))
		return
	}

	comments, err := h.Comments.ListForTask(ctx, taskID)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	jsonio.Write(w, http.StatusOK, comments)
}
