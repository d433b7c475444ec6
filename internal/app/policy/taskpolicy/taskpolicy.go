// Package taskpolicy decides who may see and change tasks.
//
// Authorization rules:
//   - Managers and super admins can list, view and change every task
//   - Other users can list only their own tasks (as assignee)
//   - Other users can view and edit tasks they are assigned to or created
//   - Other users can delete only tasks they created
//   - Other users can assign tasks only to themselves
//   - Completed tasks are read-only for non-managers
package taskpolicy

import (
	"net/http"

	"github.com/dalemusser/tasktracker/internal/app/system/authz"
	"github.com/dalemusser/tasktracker/internal/app/system/taskstatus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskInfo is the minimal task data needed for authorization checks.
type TaskInfo struct {
	AssignedTo primitive.ObjectID
	CreatedBy  primitive.ObjectID
	Status     string
}

// ListScope describes which tasks the caller may list.
type ListScope struct {
	// CanList is false when the request must be refused.
	CanList bool
	// AllUsers means no assignee filter is applied.
	AllUsers bool
	// AssigneeID restricts the list when AllUsers is false.
	AssigneeID primitive.ObjectID
}

// CanListTasks resolves the list scope for an optional assignee filter
// (NilObjectID when the client sent none).
//
//   - Manager+, no filter: all tasks
//   - Manager+, filter: that assignee
//   - Others, no filter or own id: own tasks
//   - Others, someone else's id: refused
func CanListTasks(r *http.Request, requested primitive.ObjectID) ListScope {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return ListScope{}
	}
	if authz.IsPrivileged(r) {
		if requested.IsZero() {
			return ListScope{CanList: true, AllUsers: true}
		}
		return ListScope{CanList: true, AssigneeID: requested}
	}
	if requested.IsZero() || requested == uid {
		return ListScope{CanList: true, AssigneeID: uid}
	}
	return ListScope{}
}

// CanAssign reports whether the caller may make assignee responsible for
// a task.
func CanAssign(r *http.Request, assignee primitive.ObjectID) bool {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	return authz.IsPrivileged(r) || assignee == uid
}

// CanViewTask reports whether the caller may read t and its comments.
func CanViewTask(r *http.Request, t TaskInfo) bool {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	return authz.IsPrivileged(r) || t.AssignedTo == uid || t.CreatedBy == uid
}

// CanEditTask reports whether the caller may change t at all. Completed
// tasks are locked for non-managers; status moves are further checked by
// taskstatus.Check.
func CanEditTask(r *http.Request, t TaskInfo) bool {
	if !CanViewTask(r, t) {
		return false
	}
	return authz.IsPrivileged(r) || !taskstatus.IsTerminal(t.Status)
}

// CanDeleteTask reports whether the caller may delete t.
func CanDeleteTask(r *http.Request, t TaskInfo) bool {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	return authz.IsPrivileged(r) || t.CreatedBy == uid
}

// CanCommentAs reports whether the caller may post a comment attributed
// to author.
func CanCommentAs(r *http.Request, author primitive.ObjectID) bool {
	return CanAssign(r, author)
}
