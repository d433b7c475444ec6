// internal/domain/models/taskenums.go
package models

// Task priorities.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Task statuses.
const (
	StatusToDo       = "To-Do"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Priorities lists the accepted priority values in display order.
var Priorities = []string{PriorityHigh, PriorityMedium, PriorityLow}

// Statuses lists the accepted status values in workflow order.
var Statuses = []string{StatusToDo, StatusInProgress, StatusCompleted}

// IsValidPriority reports whether p is one of Priorities.
func IsValidPriority(p string) bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is one of Statuses.
func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}
