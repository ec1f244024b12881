package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kanban-board/kanban/internal/domain"
)

// AddColumn appends an empty column to the right end of the board.
// A blank title is rejected with domain.ErrEmptyTitle.
func (e *Engine) AddColumn(title string) (*domain.Column, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}

	var created *domain.Column
	err := e.mutate(func(tx *txn) (bool, error) {
		col := domain.Column{
			ID:    tx.uniqueColumnID(),
			Title: title,
			Tasks: []domain.Task{},
		}
		tx.state.Board = append(tx.state.Board, col)
		tx.logBoard(fmt.Sprintf(`Added column "%s"`, title))
		created = &col
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateColumnTitle renames a column. Unknown IDs are ignored without a log entry.
func (e *Engine) UpdateColumnTitle(columnID, newTitle string) error {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return domain.ErrEmptyTitle
	}

	return e.mutate(func(tx *txn) (bool, error) {
		col := tx.state.Board.Column(columnID)
		if col == nil {
			return false, nil
		}
		old := col.Title
		col.Title = newTitle
		tx.logBoard(fmt.Sprintf(`Renamed column "%s" to "%s"`, old, newTitle))
		return true, nil
	})
}

// DeleteColumn removes a column and appends its tasks to the end of the
// first remaining column. Deleting the only column is rejected with
// domain.ErrLastColumn. Unknown IDs are ignored.
func (e *Engine) DeleteColumn(columnID string) error {
	return e.mutate(func(tx *txn) (bool, error) {
		board := tx.state.Board
		if len(board) <= 1 {
			e.logger.Warn("", "column", "cannot delete the last column")
			return false, domain.ErrLastColumn
		}
		ci := board.ColumnIndex(columnID)
		if ci < 0 {
			return false, nil
		}

		removed := board[ci]
		board = slices.Delete(board, ci, ci+1)
		target := &board[0]
		for _, t := range removed.Tasks {
			t.ColumnID = target.ID
			target.Tasks = append(target.Tasks, t)
		}
		tx.state.Board = board
		tx.logBoard(fmt.Sprintf(`Deleted column "%s". Tasks moved.`, removed.Title))
		return true, nil
	})
}

// MoveColumn moves the column at dragIndex to hoverIndex, shifting the
// columns in between. hoverIndex is clamped; an out-of-range dragIndex is ignored.
// Reordering columns is not logged.
func (e *Engine) MoveColumn(dragIndex, hoverIndex int) error {
	return e.mutate(func(tx *txn) (bool, error) {
		board := tx.state.Board
		if dragIndex < 0 || dragIndex >= len(board) {
			return false, nil
		}
		hoverIndex = max(0, min(hoverIndex, len(board)-1))
		if dragIndex == hoverIndex {
			return false, nil
		}
		col := board[dragIndex]
		board = slices.Delete(board, dragIndex, dragIndex+1)
		tx.state.Board = slices.Insert(board, hoverIndex, col)
		return true, nil
	})
}

// uniqueColumnID returns a column ID unused on the board.
func (tx *txn) uniqueColumnID() string {
	for {
		id := tx.e.ids.NewID(domain.ColumnIDPrefix)
		if tx.state.Board.ColumnIndex(id) < 0 {
			return id
		}
	}
}
