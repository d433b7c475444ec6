// internal/domain/models/taskcomment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskComment is feedback left on a task. Comments are append-only.
type TaskComment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TaskID    primitive.ObjectID `bson:"task_id" json:"task"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// TaskCommentView carries the author's name alongside the comment.
type TaskCommentView struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	TaskID    primitive.ObjectID `bson:"task_id" json:"task"`
	User      *UserRef           `bson:"user" json:"user"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
