// internal/app/features/auditlog/types.go
package auditlog

import (
	"time"

	"github.com/dalemusser/tasktracker/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// eventItem is one audit event with actor and subject names resolved.
type eventItem struct {
	ID            primitive.ObjectID  `json:"_id"`
	Timestamp     time.Time           `json:"timestamp"`
	Category      string              `json:"category"`
	EventType     string              `json:"eventType"`
	ActorID       *primitive.ObjectID `json:"actorId,omitempty"`
	ActorName     string              `json:"actorName,omitempty"`
	UserID        *primitive.ObjectID `json:"userId,omitempty"`
	UserName      string              `json:"userName,omitempty"`
	TaskID        *primitive.ObjectID `json:"taskId,omitempty"`
	IP            string              `json:"ip"`
	Success       bool                `json:"success"`
	FailureReason string              `json:"failureReason,omitempty"`
	Details       map[string]string   `json:"details,omitempty"`
}

var categories = map[string]bool{
	audit.CategoryAuth:  true,
	audit.CategoryTasks: true,
}
