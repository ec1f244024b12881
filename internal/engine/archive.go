package engine

import (
	"fmt"
	"slices"

	"github.com/kanban-board/kanban/internal/domain"
)

// ArchiveTask moves an on-board task to the front of the archive, unchanged.
// Unknown IDs are ignored.
func (e *Engine) ArchiveTask(taskID string) error {
	return e.mutate(func(tx *txn) (bool, error) {
		task, ok := tx.removeTask(taskID)
		if !ok {
			return false, nil
		}
		tx.state.Archive = slices.Insert(tx.state.Archive, 0, task)
		tx.logBoard(fmt.Sprintf(`Archived task "%s"`, task.Title))
		return true, nil
	})
}

// UnarchiveTask puts an archived task back on the board, at the top of the
// completion column, or of the first column when that column is missing.
// The task's ColumnID is rewritten to its new column.
// Unknown IDs are ignored.
func (e *Engine) UnarchiveTask(taskID string) error {
	return e.mutate(func(tx *txn) (bool, error) {
		ai := tx.archiveIndex(taskID)
		if ai < 0 {
			return false, nil
		}
		task := tx.state.Archive[ai]
		tx.state.Archive = slices.Delete(tx.state.Archive, ai, ai+1)

		target := tx.state.Board.Column(e.opts.CompletionColumn)
		if target == nil {
			e.logger.Debug(taskID, "archive",
				fmt.Sprintf("completion column %q missing, restoring to first column", e.opts.CompletionColumn))
			target = &tx.state.Board[0]
		}
		task.ColumnID = target.ID
		target.Tasks = slices.Insert(target.Tasks, 0, task)
		tx.logBoard(fmt.Sprintf(`Restored task "%s"`, task.Title))
		return true, nil
	})
}

// DeleteArchivedTask permanently removes a task from the archive.
// Unknown IDs are ignored.
func (e *Engine) DeleteArchivedTask(taskID string) error {
	return e.mutate(func(tx *txn) (bool, error) {
		ai := tx.archiveIndex(taskID)
		if ai < 0 {
			return false, nil
		}
		task := tx.state.Archive[ai]
		tx.state.Archive = slices.Delete(tx.state.Archive, ai, ai+1)
		tx.logBoard(fmt.Sprintf(`Permanently deleted archived task "%s"`, task.Title))
		return true, nil
	})
}

// Archive returns the archived tasks, most recently archived first.
func (e *Engine) Archive() []domain.Task {
	archive := e.Snapshot().Archive
	out := make([]domain.Task, len(archive))
	for i, t := range archive {
		out[i] = t.Clone()
	}
	return out
}

func (tx *txn) archiveIndex(taskID string) int {
	for i := range tx.state.Archive {
		if tx.state.Archive[i].ID == taskID {
			return i
		}
	}
	return -1
}
