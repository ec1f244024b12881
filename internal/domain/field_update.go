package domain

import (
	"slices"
	"strings"
)

// FieldUpdate is a single edit to one field of a task.
// The set of implementations is closed; each one knows how to apply itself.
type FieldUpdate interface {
	// Apply edits the task in place.
	Apply(t *Task) error
	// Field names the edited field, for logs.
	Field() string
}

// SetTitle replaces the task title. The title is trimmed and must not be blank.
type SetTitle struct{ Title string }

// SetDescription replaces the task description.
type SetDescription struct{ Description string }

// SetPriority replaces the task priority.
type SetPriority struct{ Priority Priority }

// SetDueDate replaces the due date. A nil Date clears it.
type SetDueDate struct{ Date *Date }

// SetCoverImage replaces the cover image URL. Empty clears it.
type SetCoverImage struct{ URL string }

// SetTags replaces the tag list.
type SetTags struct{ Tags []string }

// SetSubtasks replaces the subtask list.
type SetSubtasks struct{ Subtasks []Subtask }

// AddTags merges tags into the task, trimming blanks and skipping duplicates.
type AddTags struct{ Tags []string }

// RemoveTag removes every occurrence of a tag.
type RemoveTag struct{ Tag string }

// AddSubtasks appends subtasks after the existing ones.
type AddSubtasks struct{ Subtasks []Subtask }

// ToggleSubtask flips the completed flag of a subtask.
type ToggleSubtask struct{ SubtaskID string }

// RemoveSubtask deletes a subtask.
type RemoveSubtask struct{ SubtaskID string }

func (u SetTitle) Apply(t *Task) error {
	title := strings.TrimSpace(u.Title)
	if title == "" {
		return ErrEmptyTitle
	}
	t.Title = title
	return nil
}

func (u SetDescription) Apply(t *Task) error {
	t.Description = u.Description
	return nil
}

func (u SetPriority) Apply(t *Task) error {
	if !u.Priority.IsValid() {
		return ErrInvalidPriority
	}
	t.Priority = u.Priority
	return nil
}

func (u SetDueDate) Apply(t *Task) error {
	if u.Date == nil {
		t.DueDate = nil
		return nil
	}
	d := *u.Date
	t.DueDate = &d
	return nil
}

func (u SetCoverImage) Apply(t *Task) error {
	t.CoverImage = strings.TrimSpace(u.URL)
	return nil
}

func (u SetTags) Apply(t *Task) error {
	t.Tags = append([]string{}, u.Tags...)
	return nil
}

func (u SetSubtasks) Apply(t *Task) error {
	t.Subtasks = append([]Subtask{}, u.Subtasks...)
	return nil
}

func (u AddTags) Apply(t *Task) error {
	t.Tags = MergeTags(t.Tags, u.Tags)
	return nil
}

func (u RemoveTag) Apply(t *Task) error {
	t.Tags = slices.DeleteFunc(append([]string{}, t.Tags...), func(tag string) bool {
		return tag == u.Tag
	})
	return nil
}

func (u AddSubtasks) Apply(t *Task) error {
	t.Subtasks = append(append([]Subtask{}, t.Subtasks...), u.Subtasks...)
	return nil
}

func (u ToggleSubtask) Apply(t *Task) error {
	subtasks := append([]Subtask{}, t.Subtasks...)
	for i := range subtasks {
		if subtasks[i].ID == u.SubtaskID {
			subtasks[i].Completed = !subtasks[i].Completed
			t.Subtasks = subtasks
			return nil
		}
	}
	return ErrSubtaskNotFound
}

func (u RemoveSubtask) Apply(t *Task) error {
	n := len(t.Subtasks)
	t.Subtasks = slices.DeleteFunc(append([]Subtask{}, t.Subtasks...), func(s Subtask) bool {
		return s.ID == u.SubtaskID
	})
	if len(t.Subtasks) == n {
		return ErrSubtaskNotFound
	}
	return nil
}

func (SetTitle) Field() string       { return "title" }
func (SetDescription) Field() string { return "description" }
func (SetPriority) Field() string    { return "priority" }
func (SetDueDate) Field() string     { return "dueDate" }
func (SetCoverImage) Field() string  { return "coverImage" }
func (SetTags) Field() string        { return "tags" }
func (SetSubtasks) Field() string    { return "subtasks" }
func (AddTags) Field() string        { return "tags" }
func (RemoveTag) Field() string      { return "tags" }
func (AddSubtasks) Field() string    { return "subtasks" }
func (ToggleSubtask) Field() string  { return "subtasks" }
func (RemoveSubtask) Field() string  { return "subtasks" }

// MergeTags appends the trimmed, non-blank additions that are not already present.
// Order of existing tags is preserved.
func MergeTags(current, add []string) []string {
	out := append([]string{}, current...)
	for _, tag := range add {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(out, tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}
