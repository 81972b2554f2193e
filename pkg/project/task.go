package project

import (
	"errors"
	"strings"

	"tableflip.dev/gantt/pkg/timeline"
)

var (
	// ErrNameRequired is returned for a task submission without a name.
	ErrNameRequired = errors.New("project: task name required")
	// ErrStartRequired is returned for a task submission without a start date.
	ErrStartRequired = errors.New("project: task start date required")
	// ErrEndRequired is returned for a task submission without an end date.
	ErrEndRequired = errors.New("project: task end date required")
	// ErrTaskNotFound is returned when no task has the requested id.
	ErrTaskNotFound = errors.New("project: task not found")
)

// Task is one bar of the chart. End is inclusive.
type Task struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Start    Date   `json:"start"`
	End      Date   `json:"end"`
	Progress int    `json:"progress"`
	Category string `json:"category"`
}

// Span returns the date range used for layout.
func (t Task) Span() timeline.Span {
	return timeline.Span{Start: t.Start.Time, End: t.End.Time}
}

// Days is the inclusive length of the task in calendar days. Inverted spans
// report zero.
func (t Task) Days() int {
	if t.End.Before(t.Start.Time) {
		return 0
	}
	return int(t.End.Sub(t.Start.Time).Hours()/24) + 1
}

// TaskInput is a task submission from an editor.
type TaskInput struct {
	Name     string
	Start    Date
	End      Date
	Progress int
	Category string
}

// Validate rejects incomplete submissions. Inverted spans are accepted.
func (in TaskInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return ErrNameRequired
	case in.Start.IsZero():
		return ErrStartRequired
	case in.End.IsZero():
		return ErrEndRequired
	}
	return nil
}

// FromTask prefills an input with the current values of t, for edits.
func FromTask(t Task) TaskInput {
	return TaskInput{
		Name:     t.Name,
		Start:    t.Start,
		End:      t.End,
		Progress: t.Progress,
		Category: t.Category,
	}
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
