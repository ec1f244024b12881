package usecase

import (
	"context"

	"github.com/kanban-board/kanban/internal/domain"
	"github.com/kanban-board/kanban/internal/engine"
)

// AddColumnInput contains the parameters for adding a column.
type AddColumnInput struct {
	Title string
}

// AddColumnOutput contains the created column.
type AddColumnOutput struct {
	Column domain.Column
}

// AddColumn is the use case for appending a column to the board.
type AddColumn struct {
	deps BoardDeps
}

// NewAddColumn creates a new AddColumn use case.
func NewAddColumn(deps BoardDeps) *AddColumn {
	return &AddColumn{deps: deps}
}

// Execute appends an empty column at the right end of the board.
func (uc *AddColumn) Execute(_ context.Context, in AddColumnInput) (*AddColumnOutput, error) {
	var created domain.Column
	_, _, err := uc.deps.apply(func(e *engine.Engine) error {
		col, err := e.AddColumn(in.Title)
		if err != nil {
			return err
		}
		created = *col
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &AddColumnOutput{Column: created}, nil
}

// RenameColumnInput contains the parameters for renaming a column.
type RenameColumnInput struct {
	Column string // Column ID or title
	Title  string // New title
}

// RenameColumn is the use case for renaming a column.
type RenameColumn struct {
	deps BoardDeps
}

// NewRenameColumn creates a new RenameColumn use case.
func NewRenameColumn(deps BoardDeps) *RenameColumn {
	return &RenameColumn{deps: deps}
}

// Execute renames the column. Returns ErrColumnNotFound if it does not exist.
func (uc *RenameColumn) Execute(_ context.Context, in RenameColumnInput) error {
	_, _, err := uc.deps.apply(func(e *engine.Engine) error {
		col, err := resolveColumn(e.Snapshot().Board, in.Column)
		if err != nil {
			return err
		}
		return e.UpdateColumnTitle(col.ID, in.Title)
	})
	return err
}

// DeleteColumnInput contains the parameters for deleting a column.
type DeleteColumnInput struct {
	Column string // Column ID or title
}

// DeleteColumnOutput reports where the column's tasks went.
type DeleteColumnOutput struct {
	MergedInto domain.Column // Column that received the tasks
	Moved      int           // Number of tasks moved
}

// DeleteColumn is the use case for deleting a column.
type DeleteColumn struct {
	deps BoardDeps
}

// NewDeleteColumn creates a new DeleteColumn use case.
func NewDeleteColumn(deps BoardDeps) *DeleteColumn {
	return &DeleteColumn{deps: deps}
}

// Execute deletes the column, moving its tasks to the first remaining column.
// Returns ErrLastColumn for the only column.
func (uc *DeleteColumn) Execute(_ context.Context, in DeleteColumnInput) (*DeleteColumnOutput, error) {
	out := &DeleteColumnOutput{}
	state, _, err := uc.deps.apply(func(e *engine.Engine) error {
		col, err := resolveColumn(e.Snapshot().Board, in.Column)
		if err != nil {
			return err
		}
		out.Moved = len(col.Tasks)
		return e.DeleteColumn(col.ID)
	})
	if err != nil {
		return nil, err
	}
	out.MergedInto = state.Board[0].Clone()
	return out, nil
}

// MoveColumnInput contains the parameters for reordering a column.
type MoveColumnInput struct {
	Column string // Column ID or title
	Index  int    // New position (clamped)
}

// MoveColumn is the use case for reordering columns.
type MoveColumn struct {
	deps BoardDeps
}

// NewMoveColumn creates a new MoveColumn use case.
func NewMoveColumn(deps BoardDeps) *MoveColumn {
	return &MoveColumn{deps: deps}
}

// Execute moves the column to the given position.
func (uc *MoveColumn) Execute(_ context.Context, in MoveColumnInput) error {
	_, _, err := uc.deps.apply(func(e *engine.Engine) error {
		board := e.Snapshot().Board
		col, err := resolveColumn(board, in.Column)
		if err != nil {
			return err
		}
		return e.MoveColumn(board.ColumnIndex(col.ID), in.Index)
	})
	return err
}
