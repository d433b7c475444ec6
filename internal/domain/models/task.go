// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task is a unit of work assigned to exactly one user.
//
// EstimatedTime and RemainingTime are display labels such as "2 hrs";
// they are never parsed as durations.
type Task struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title         string             `bson:"title" json:"title"`
	TitleCI       string             `bson:"title_ci" json:"-"`
	EstimatedTime string             `bson:"estimated_time" json:"estimatedTime"`
	RemainingTime string             `bson:"remaining_time" json:"remainingTime"`
	AssignedTo    primitive.ObjectID `bson:"assigned_to" json:"assignedTo"`
	Priority      string             `bson:"priority" json:"priority"`
	Status        string             `bson:"status" json:"status"`
	Date          *time.Time         `bson:"date,omitempty" json:"date,omitempty"`
	CreatedBy     primitive.ObjectID `bson:"created_by" json:"createdBy"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// TaskView is a Task with its assignee joined in. It is the shape
// returned by list and get endpoints.
type TaskView struct {
	ID            primitive.ObjectID `bson:"_id" json:"_id"`
	Title         string             `bson:"title" json:"title"`
	EstimatedTime string             `bson:"estimated_time" json:"estimatedTime"`
	RemainingTime string             `bson:"remaining_time" json:"remainingTime"`
	AssignedTo    *UserRef           `bson:"assigned_to" json:"assignedTo"`
	Priority      string             `bson:"priority" json:"priority"`
	Status        string             `bson:"status" json:"status"`
	Date          *time.Time         `bson:"date,omitempty" json:"date,omitempty"`
	CreatedBy     primitive.ObjectID `bson:"created_by" json:"createdBy"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
