package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kanban-board/kanban/internal/domain"
)

// AddTask creates a task at the top of a column.
// The title is trimmed; a blank title is rejected with domain.ErrEmptyTitle.
// Returns a nil task and nil error when the column does not exist.
func (e *Engine) AddTask(columnID, title string) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}

	var created *domain.Task
	err := e.mutate(func(tx *txn) (bool, error) {
		ci := tx.state.Board.ColumnIndex(columnID)
		if ci < 0 {
			e.logger.Debug("", "task", fmt.Sprintf("add task: column %q not found", columnID))
			return false, nil
		}

		task := domain.Task{
			ID:       tx.uniqueTaskID(),
			Title:    title,
			Priority: domain.PriorityMedium,
			ColumnID: columnID,
			Subtasks: []domain.Subtask{},
			Tags:     []string{},
			Activity: []domain.TaskActivityLogEntry{},
		}
		tx.logTask(&task, domain.TaskCreatedMessage)

		col := &tx.state.Board[ci]
		col.Tasks = slices.Insert(col.Tasks, 0, task)
		tx.logBoard(fmt.Sprintf(`Added task "%s"`, title))

		c := task.Clone()
		created = &c
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateTask replaces the on-board task with the same ID, keeping its position.
// ColumnID is forced to the containing column and the activity history is
// kept as stored. A priority change is recorded in the task's activity.
// Invalid task data is rejected with an error wrapping domain.ErrInvalidTask.
// Unknown IDs are ignored.
func (e *Engine) UpdateTask(updated domain.Task) error {
	updated = updated.Clone()
	domain.NormalizeTask(&updated)

	return e.mutate(func(tx *txn) (bool, error) {
		ci, ti := tx.state.Board.FindTask(updated.ID)
		if ci < 0 {
			e.logger.Debug(updated.ID, "task", "update task: not on board")
			return false, nil
		}
		return true, tx.replaceTask(ci, ti, updated)
	})
}

// ApplyFieldUpdate applies one or more field edits to an on-board task in a
// single transition. Any failing update rejects the whole call.
// Unknown IDs are ignored.
func (e *Engine) ApplyFieldUpdate(taskID string, updates ...domain.FieldUpdate) error {
	return e.mutate(func(tx *txn) (bool, error) {
		ci, ti := tx.state.Board.FindTask(taskID)
		if ci < 0 {
			e.logger.Debug(taskID, "task", "field update: not on board")
			return false, nil
		}
		updated := tx.state.Board[ci].Tasks[ti].Clone()
		for _, u := range updates {
			if err := u.Apply(&updated); err != nil {
				return false, fmt.Errorf("update %s: %w", u.Field(), err)
			}
		}
		return true, tx.replaceTask(ci, ti, updated)
	})
}

// replaceTask stores updated at (ci, ti) with the shared update rules.
func (tx *txn) replaceTask(ci, ti int, updated domain.Task) error {
	col := &tx.state.Board[ci]
	old := col.Tasks[ti]

	updated.ColumnID = col.ID
	updated.Activity = old.Activity
	if err := updated.Validate(); err != nil {
		return err
	}
	if old.Priority != updated.Priority {
		tx.logTask(&updated, fmt.Sprintf("Priority changed from %s to %s", old.Priority, updated.Priority))
	}
	col.Tasks[ti] = updated
	return nil
}

// DeleteTask removes a task from the board irrecoverably.
// Unknown IDs are ignored.
func (e *Engine) DeleteTask(taskID string) error {
	return e.mutate(func(tx *txn) (bool, error) {
		task, ok := tx.removeTask(taskID)
		if !ok {
			return false, nil
		}
		tx.logBoard(fmt.Sprintf(`Permanently deleted "%s"`, task.Title))
		return true, nil
	})
}

// MoveTask moves a task from sourceColumnID to position destIndex of
// destColumnID. destIndex is clamped to the destination bounds and counts
// positions after the task has left its source. Moving within one column is
// a pure reorder; moving across columns is logged on the board and the task.
// Nothing happens if the task is not in the source column or the
// destination column does not exist.
func (e *Engine) MoveTask(taskID, sourceColumnID, destColumnID string, destIndex int) error {
	return e.mutate(func(tx *txn) (bool, error) {
		board := tx.state.Board
		si := board.ColumnIndex(sourceColumnID)
		di := board.ColumnIndex(destColumnID)
		if si < 0 || di < 0 {
			return false, nil
		}
		src, dst := &board[si], &board[di]
		ti := src.TaskIndex(taskID)
		if ti < 0 {
			return false, nil
		}

		task := src.Tasks[ti]
		src.Tasks = slices.Delete(src.Tasks, ti, ti+1)
		task.ColumnID = dst.ID

		destIndex = max(0, min(destIndex, len(dst.Tasks)))
		if si != di {
			msg := fmt.Sprintf(`Moved "%s" from %s to %s`, task.Title, src.Title, dst.Title)
			tx.logBoard(msg)
			tx.logTask(&task, msg)
		}
		dst.Tasks = slices.Insert(dst.Tasks, destIndex, task)
		return true, nil
	})
}

// removeTask takes a task off the board, returning it.
func (tx *txn) removeTask(taskID string) (domain.Task, bool) {
	ci, ti := tx.state.Board.FindTask(taskID)
	if ci < 0 {
		return domain.Task{}, false
	}
	col := &tx.state.Board[ci]
	task := col.Tasks[ti]
	col.Tasks = slices.Delete(col.Tasks, ti, ti+1)
	return task, true
}

// uniqueTaskID returns a task ID unused across board and archive.
func (tx *txn) uniqueTaskID() string {
	for {
		id := tx.e.ids.NewID(domain.TaskIDPrefix)
		if tx.state.Board.Task(id) == nil && tx.state.ArchivedTask(id) == nil {
			return id
		}
	}
}
