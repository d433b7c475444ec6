// Package taskstatus enforces the task status workflow.
//
//	To-Do       -> To-Do | In Progress | Completed
//	In Progress -> To-Do | In Progress | Completed
//	Completed   -> Completed, or To-Do | In Progress for managers (reopen)
package taskstatus

import (
	"errors"
	"fmt"

	"github.com/dalemusser/tasktracker/internal/domain/models"
)

var (
	// ErrUnknownStatus is returned when either side is not a known status.
	ErrUnknownStatus = errors.New("unknown task status")
	// ErrInvalidTransition is returned for a move the caller may not make.
	ErrInvalidTransition = errors.New("invalid status transition")
)

type edge uint8

const (
	closed edge = iota
	open
	managerOnly
)

var transitions = map[string]map[string]edge{
	models.StatusToDo: {
		models.StatusToDo:       open,
		models.StatusInProgress: open,
		models.StatusCompleted:  open,
	},
	models.StatusInProgress: {
		models.StatusToDo:       open,
		models.StatusInProgress: open,
		models.StatusCompleted:  open,
	},
	models.StatusCompleted: {
		models.StatusToDo:       managerOnly,
		models.StatusInProgress: managerOnly,
		models.StatusCompleted:  open,
	},
}

// Check reports whether a task may move from -> to. privileged is true
// for managers and super admins.
func Check(from, to string, privileged bool) error {
	row, ok := transitions[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, from)
	}
	e, ok := row[to]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	switch e {
	case open:
		return nil
	case managerOnly:
		if privileged {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// IsTerminal reports whether non-managers can no longer change a task in
// status s.
func IsTerminal(s string) bool {
	return s == models.StatusCompleted
}
