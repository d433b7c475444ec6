package taskpolicy_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/tasktracker/internal/app/policy/taskpolicy"
	"github.com/dalemusser/tasktracker/internal/app/system/auth"
	"github.com/dalemusser/tasktracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func requestAs(id primitive.ObjectID, roles ...string) *http.Request {
	req := httptest.NewRequest("GET", "/tasks", nil)
	return auth.WithTestUser(req, &auth.SessionUser{ID: id.Hex(), Roles: roles})
}

func TestCanListTasks(t *testing.T) {
	self := primitive.NewObjectID()
	other := primitive.NewObjectID()

	tests := []struct {
		name      string
		roles     []string
		requested primitive.ObjectID
		want      taskpolicy.ListScope
	}{
		{"user no filter", []string{"user"}, primitive.NilObjectID, taskpolicy.ListScope{CanList: true, AssigneeID: self}},
		{"user own filter", []string{"user"}, self, taskpolicy.ListScope{CanList: true, AssigneeID: self}},
		{"user other filter", []string{"user"}, other, taskpolicy.ListScope{}},
		{"manager no filter", []string{"manager"}, primitive.NilObjectID, taskpolicy.ListScope{CanList: true, AllUsers: true}},
		{"manager other filter", []string{"manager"}, other, taskpolicy.ListScope{CanList: true, AssigneeID: other}},
		{"superAdmin other filter", []string{"superAdmin"}, other, taskpolicy.ListScope{CanList: true, AssigneeID: other}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := taskpolicy.CanListTasks(requestAs(self, tt.roles...), tt.requested)
			if got != tt.want {
				t.Errorf("CanListTasks() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCanListTasks_NoUser(t *testing.T) {
	got := taskpolicy.CanListTasks(httptest.NewRequest("GET", "/tasks", nil), primitive.NilObjectID)
	if got.CanList {
		t.Error("expected CanList=false without a user")
	}
}

func TestCanAssign(t *testing.T) {
	self := primitive.NewObjectID()
	other := primitive.NewObjectID()

	if !taskpolicy.CanAssign(requestAs(self, "user"), self) {
		t.Error("user should be able to assign to self")
	}
	if taskpolicy.CanAssign(requestAs(self, "user"), other) {
		t.Error("user should not be able to assign to others")
	}
	if !taskpolicy.CanAssign(requestAs(self, "manager"), other) {
		t.Error("manager should be able to assign to others")
	}
}

func TestCanViewAndEditTask(t *testing.T) {
	self := primitive.NewObjectID()
	other := primitive.NewObjectID()

	mine := taskpolicy.TaskInfo{AssignedTo: self, CreatedBy: other, Status: models.StatusToDo}
	created := taskpolicy.TaskInfo{AssignedTo: other, CreatedBy: self, Status: models.StatusInProgress}
	foreign := taskpolicy.TaskInfo{AssignedTo: other, CreatedBy: other, Status: models.StatusToDo}
	done := taskpolicy.TaskInfo{AssignedTo: self, CreatedBy: self, Status: models.StatusCompleted}

	user := requestAs(self, "user")
	manager := requestAs(self, "manager")

	if !taskpolicy.CanViewTask(user, mine) || !taskpolicy.CanViewTask(user, created) {
		t.Error("assignee and creator should be able to view")
	}
	if taskpolicy.CanViewTask(user, foreign) {
		t.Error("user should not view someone else's task")
	}
	if !taskpolicy.CanViewTask(manager, foreign) {
		t.Error("manager should view any task")
	}

	if !taskpolicy.CanEditTask(user, mine) {
		t.Error("assignee should edit open task")
	}
	if taskpolicy.CanEditTask(user, done) {
		t.Error("user should not edit a completed task")
	}
	if !taskpolicy.CanEditTask(manager, done) {
		t.Error("manager should edit a completed task")
	}
}

func TestCanDeleteTask(t *testing.T) {
	self := primitive.NewObjectID()
	other := primitive.NewObjectID()

	assignedOnly := taskpolicy.TaskInfo{AssignedTo: self, CreatedBy: other}
	created := taskpolicy.TaskInfo{AssignedTo: self, CreatedBy: self}

	if taskpolicy.CanDeleteTask(requestAs(self, "user"), assignedOnly) {
		t.Error("assignee who did not create the task should not delete it")
	}
	if !taskpolicy.CanDeleteTask(requestAs(self, "user"), created) {
		t.Error("creator should delete own task")
	}
	if !taskpolicy.CanDeleteTask(requestAs(self, "superAdmin"), assignedOnly) {
		t.Error("super admin should delete any task")
	}
}

func TestCanCommentAs(t *testing.T) {
	self := primitive.NewObjectID()
	other := primitive.NewObjectID()

	if !taskpolicy.CanCommentAs(requestAs(self, "user"), self) {
		t.Error("user should comment as self")
	}
	if taskpolicy.CanCommentAs(requestAs(self, "user"), other) {
		t.Error("user should not comment as someone else")
	}
	if !taskpolicy.CanCommentAs(requestAs(self, "manager"), other) {
		t.Error("manager may attribute comments")
	}
}
