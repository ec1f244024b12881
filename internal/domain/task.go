// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Task represents a card on the board.
// Fields are ordered to minimize memory padding.
type Task struct {
	DueDate     *Date                  `json:"dueDate,omitempty"`                       // Optional calendar date
	ID          string                 `json:"id" validate:"required"`                  // Unique across board and archive
	Title       string                 `json:"title" validate:"required"`               // Display title (required)
	Description string                 `json:"description"`                             // Markdown text
	Priority    Priority               `json:"priority" validate:"oneof=Low Medium High Critical"`
	ColumnID    string                 `json:"columnId" validate:"required"`            // Containing (or last) column
	CoverImage  string                 `json:"coverImage,omitempty" validate:"omitempty,url"`
	Subtasks    []Subtask              `json:"subtasks" validate:"dive"`
	Tags        []string               `json:"tags"`
	Activity    []TaskActivityLogEntry `json:"activity"` // Newest first
}

// Subtask is a checklist item owned by a task.
type Subtask struct {
	ID        string `json:"id" validate:"required"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func taskValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the structural rules of a task.
// The returned error wraps ErrInvalidTask.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTask, ErrEmptyTitle)
	}
	err := taskValidator().Struct(t)
	if err == nil {
		return nil
	}
	var msgs []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range verrs {
			msgs = append(msgs, fmt.Sprintf("field %s failed %q", e.StructNamespace(), e.Tag()))
		}
	} else {
		msgs = append(msgs, err.Error())
	}
	return fmt.Errorf("%w: %s", ErrInvalidTask, strings.Join(msgs, "; "))
}

// NormalizeTask replaces absent sequences with empty ones so engine code
// never has to distinguish nil from empty.
func NormalizeTask(t *Task) {
	if t.Subtasks == nil {
		t.Subtasks = []Subtask{}
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.Activity == nil {
		t.Activity = []TaskActivityLogEntry{}
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	c.Subtasks = append(make([]Subtask, 0, len(t.Subtasks)), t.Subtasks...)
	c.Tags = append(make([]string, 0, len(t.Tags)), t.Tags...)
	c.Activity = append(make([]TaskActivityLogEntry, 0, len(t.Activity)), t.Activity...)
	return c
}

// HasTag reports whether the task carries the given tag (case-sensitive).
func (t *Task) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// CompletedSubtasks returns the number of completed subtasks.
func (t *Task) CompletedSubtasks() int {
	n := 0
	for _, s := range t.Subtasks {
		if s.Completed {
			n++
		}
	}
	return n
}
