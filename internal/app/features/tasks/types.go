package tasks

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dalemusser/tasktracker/internal/app/system/apierr"
	"github.com/dalemusser/tasktracker/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client-facing messages.
const (
	MsgInvalidTaskID     = "Invalid task ID"
	MsgInvalidAssignedTo = "Invalid assignedTo ID"
	MsgInvalidUserID     = "Invalid user ID"
	MsgInvalidDate       = "Date must be YYYY-MM-DD or an RFC 3339 timestamp."
	MsgTaskNotFound      = "Task not found"
	MsgAssigneeNotFound  = "Assignee not found"
	MsgAuthorNotFound    = "User not found"
	MsgCannotAssign      = "Access denied. You can only assign tasks to yourself."
	MsgCannotView        = "Access denied. You cannot view this task."
	MsgCannotEdit        = "Access denied. You cannot modify this task."
	MsgCannotDelete      = "Access denied. Only the creator or a manager can delete this task."
	MsgCannotList        = "Access denied. You can only list your own tasks."
	MsgCannotCommentAs   = "Access denied. You can only comment as yourself."
	MsgTaskLocked        = "Completed tasks cannot be modified."
	MsgStatusChanged     = "Task status changed; reload and try again."
	MsgCommentRequired   = "Comment is required."
	MsgTitleRequired     = "Title is required."
)

type createInput struct {
	Title         string `json:"title" validate:"required,max=200" label:"Title"`
	EstimatedTime string `json:"estimatedTime" validate:"max=50" label:"Estimated time"`
	RemainingTime string `json:"remainingTime" validate:"max=50" label:"Remaining time"`
	AssignedTo    string `json:"assignedTo" validate:"objectid" label:"assignedTo"`
	Priority      string `json:"priority" validate:"priority" label:"Priority"`
	Status        string `json:"status" validate:"omitempty,taskstatus" label:"Status"`
	Date          string `json:"date"`
}

// updateInput uses pointers so absent fields are left alone. Date is raw
// so that an explicit null clears it.
type updateInput struct {
	Title         *string         `json:"title" validate:"omitnil,max=200" label:"Title"`
	EstimatedTime *string         `json:"estimatedTime" validate:"omitnil,max=50" label:"Estimated time"`
	RemainingTime *string         `json:"remainingTime" validate:"omitnil,max=50" label:"Remaining time"`
	AssignedTo    *string         `json:"assignedTo" validate:"omitnil,objectid" label:"assignedTo"`
	Priority      *string         `json:"priority" validate:"omitnil,priority" label:"Priority"`
	Status        *string         `json:"status" validate:"omitnil,taskstatus" label:"Status"`
	Date          json.RawMessage `json:"date"`
}

type commentInput struct {
	Comment string  `json:"comment" validate:"max=4000" label:"Comment"`
	User    *string `json:"user"`
}

type taskResponse struct {
	Message string      `json:"message"`
	Task    models.Task `json:"task"`
}

type commentResponse struct {
	Message string             `json:"message"`
	Comment models.TaskComment `json:"comment"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// taskIDParam parses the {id} route parameter.
func taskIDParam(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(chi.URLParam(r, "id")))
	if err != nil {
		return primitive.NilObjectID, apierr.New(apierr.InvalidArgument, MsgInvalidTaskID)
	}
	return id, nil
}
