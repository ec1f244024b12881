package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kanban-board/kanban/internal/domain"
	"github.com/kanban-board/kanban/internal/engine"
)

// resolveColumn finds a column by ID, then by case-insensitive title.
// An empty ref selects the first column.
func resolveColumn(board domain.Board, ref string) (domain.Column, error) {
	if ref == "" {
		return board[0], nil
	}
	if c := board.Column(ref); c != nil {
		return *c, nil
	}
	for _, c := range board {
		if strings.EqualFold(c.Title, strings.TrimSpace(ref)) {
			return c, nil
		}
	}
	return domain.Column{}, fmt.Errorf("%w: %s", domain.ErrColumnNotFound, ref)
}

// requireTask returns the on-board task named by ref or ErrTaskNotFound.
// ref is a full ID or a unique ID prefix, with or without "task-".
func requireTask(e *engine.Engine, ref string) (domain.Task, error) {
	if task, ok := e.Task(ref); ok {
		return task, nil
	}
	task, err := matchTask(e.Snapshot().Board.AllTasks(), ref)
	if err != nil {
		return domain.Task{}, fmt.Errorf("%w: %s", err, ref)
	}
	return task, nil
}

// requireArchived returns the archived task named by ref or ErrTaskNotFound.
func requireArchived(e *engine.Engine, ref string) (domain.Task, error) {
	if task, ok := e.ArchivedTask(ref); ok {
		return task, nil
	}
	task, err := matchTask(e.Snapshot().Archive, ref)
	if err != nil {
		return domain.Task{}, fmt.Errorf("%w in archive: %s", err, ref)
	}
	return task, nil
}

// matchTask finds the only task whose ID starts with ref.
func matchTask(tasks []domain.Task, ref string) (domain.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	var found []domain.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) || strings.HasPrefix(t.ID, domain.TaskIDPrefix+ref) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return domain.Task{}, domain.ErrTaskNotFound
	case 1:
		return found[0], nil
	default:
		return domain.Task{}, domain.ErrAmbiguousTaskID
	}
}

// AddTaskInput contains the parameters for creating a task.
// Fields are ordered to minimize memory padding.
type AddTaskInput struct {
	Column  string               // Column ID or title (empty = first column)
	Title   string               // Task title (required)
	Updates []domain.FieldUpdate // Optional edits applied right after creation
}

// AddTaskOutput contains the created task.
type AddTaskOutput struct {
	Task domain.Task
}

// AddTask is the use case for creating a task.
type AddTask struct {
	deps BoardDeps
}

// NewAddTask creates a new AddTask use case.
func NewAddTask(deps BoardDeps) *AddTask {
	return &AddTask{deps: deps}
}

// Execute creates a task at the top of the column and applies the optional edits.
// If an edit is invalid, nothing is saved.
func (uc *AddTask) Execute(_ context.Context, in AddTaskInput) (*AddTaskOutput, error) {
	var created domain.Task
	_, _, err := uc.deps.apply(func(e *engine.Engine) error {
		col, err := resolveColumn(e.Snapshot().Board, in.Column)
		if err != nil {
			return err
		}
		task, err := e.AddTask(col.ID, in.Title)
		if err != nil {
			return err
		}
		if task == nil {
			return fmt.Errorf("%w: %s", domain.ErrColumnNotFound, col.ID)
		}
		if len(in.Updates) > 0 {
			if err := e.ApplyFieldUpdate(task.ID, in.Updates...); err != nil {
				return err
			}
		}
		created, _ = e.Task(task.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &AddTaskOutput{Task: created}, nil
}

// EditTaskInput contains the parameters for editing a task.
type EditTaskInput struct {
	TaskID  string
	Updates []domain.FieldUpdate
}

// EditTaskOutput contains the edited task.
type EditTaskOutput struct {
	Task domain.Task
}

// EditTask is the use case for editing task fields.
type EditTask struct {
	deps BoardDeps
}

// NewEditTask creates a new EditTask use case.
func NewEditTask(deps BoardDeps) *EditTask {
	return &EditTask{deps: deps}
}

// Execute applies all updates as one change.
func (uc *EditTask) Execute(_ context.Context, in EditTaskInput) (*EditTaskOutput, error) {
	var edited domain.Task
	_, _, err := uc.deps.apply(func(e *engine.Engine) error {
		task, err := requireTask(e, in.TaskID)
		if err != nil {
			return err
		}
		if err := e.ApplyFieldUpdate(task.ID, in.Updates...); err != nil {
			return err
		}
		edited, _ = e.Task(task.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &EditTaskOutput{Task: edited}, nil
}

// MoveTaskInput contains the parameters for moving a task.
type MoveTaskInput struct {
	TaskID string
	Column string // Destination column ID or title
	Index  int    // Destination position (clamped)
}

// MoveTaskOutput contains the moved task.
type MoveTaskOutput struct {
	Task domain.Task
}

// MoveTask is the use case for moving a task to another column or position.
type MoveTask struct {
	deps BoardDeps
}

// NewMoveTask creates a new MoveTask use case.
func NewMoveTask(deps BoardDeps) *MoveTask {
	return &MoveTask{deps: deps}
}

// Execute moves the task from its current column to the destination.
func (uc *MoveTask) Execute(_ context.Context, in MoveTaskInput) (*MoveTaskOutput, error) {
	var moved domain.Task
	_, _, err := uc.deps.apply(func(e *engine.Engine) error {
		task, err := requireTask(e, in.TaskID)
		if err != nil {
			return err
		}
		dst, err := resolveColumn(e.Snapshot().Board, in.Column)
		if err != nil {
			return err
		}
		if err := e.MoveTask(task.ID, task.ColumnID, dst.ID, in.Index); err != nil {
			return err
		}
		moved, _ = e.Task(task.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &MoveTaskOutput{Task: moved}, nil
}

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID string
}

// DeleteTask is the use case for permanently deleting an on-board task.
type DeleteTask struct {
	deps BoardDeps
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(deps BoardDeps) *DeleteTask {
	return &DeleteTask{deps: deps}
}

// Execute deletes the task. Returns ErrTaskNotFound if it is not on the board.
func (uc *DeleteTask) Execute(_ context.Context, in DeleteTaskInput) error {
	_, _, err := uc.deps.apply(func(e *engine.Engine) error {
		task, err := requireTask(e, in.TaskID)
		if err != nil {
			return err
		}
		return e.DeleteTask(task.ID)
	})
	return err
}

// ShowTaskInput contains the parameters for ShowTask.
type ShowTaskInput struct {
	TaskID string
}

// ShowTaskOutput contains a task and where it lives.
type ShowTaskOutput struct {
	Column   domain.Column // Containing column (zero if archived)
	Task     domain.Task
	Archived bool
}

// ShowTask is the use case for looking up a task on the board or in the archive.
type ShowTask struct {
	deps BoardDeps
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(deps BoardDeps) *ShowTask {
	return &ShowTask{deps: deps}
}

// Execute returns the task, looking on the board first.
// Returns ErrTaskNotFound if it does not exist.
func (uc *ShowTask) Execute(_ context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	e, err := uc.deps.open()
	if err != nil {
		return nil, err
	}
	task, err := requireTask(e, in.TaskID)
	if err == nil {
		col, _ := e.Column(task.ColumnID)
		return &ShowTaskOutput{Task: task, Column: col}, nil
	}
	if errors.Is(err, domain.ErrAmbiguousTaskID) {
		return nil, err
	}
	if task, archErr := requireArchived(e, in.TaskID); archErr == nil {
		return &ShowTaskOutput{Task: task, Archived: true}, nil
	} else if errors.Is(archErr, domain.ErrAmbiguousTaskID) {
		return nil, archErr
	}
	return nil, err
}
