package usecase

import (
	"context"

	"github.com/kanban-board/kanban/internal/domain"
	"github.com/kanban-board/kanban/internal/engine"
)

// ArchiveTaskInput identifies a task for the archive use cases.
type ArchiveTaskInput struct {
	TaskID string
}

// ArchiveTask is the use case for moving a task off the board into the archive.
type ArchiveTask struct {
	deps BoardDeps
}

// NewArchiveTask creates a new ArchiveTask use case.
func NewArchiveTask(deps BoardDeps) *ArchiveTask {
	return &ArchiveTask{deps: deps}
}

// Execute archives the task. Returns ErrTaskNotFound if it is not on the board.
func (uc *ArchiveTask) Execute(_ context.Context, in ArchiveTaskInput) error {
	_, _, err := uc.deps.apply(func(e *engine.Engine) error {
		task, err := requireTask(e, in.TaskID)
		if err != nil {
			return err
		}
		return e.ArchiveTask(task.ID)
	})
	return err
}

// RestoreTaskOutput contains the restored task.
type RestoreTaskOutput struct {
	Task domain.Task
}

// RestoreTask is the use case for putting an archived task back on the board.
type RestoreTask struct {
	deps BoardDeps
}

// NewRestoreTask creates a new RestoreTask use case.
func NewRestoreTask(deps BoardDeps) *RestoreTask {
	return &RestoreTask{deps: deps}
}

// Execute restores the task to the completion column (or the first column).
// Returns ErrTaskNotFound if it is not archived.
func (uc *RestoreTask) Execute(_ context.Context, in ArchiveTaskInput) (*RestoreTaskOutput, error) {
	var restored domain.Task
	_, _, err := uc.deps.apply(func(e *engine.Engine) error {
		task, err := requireArchived(e, in.TaskID)
		if err != nil {
			return err
		}
		if err := e.UnarchiveTask(task.ID); err != nil {
			return err
		}
		restored, _ = e.Task(task.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RestoreTaskOutput{Task: restored}, nil
}

// PurgeArchivedTask is the use case for permanently deleting an archived task.
type PurgeArchivedTask struct {
	deps BoardDeps
}

// NewPurgeArchivedTask creates a new PurgeArchivedTask use case.
func NewPurgeArchivedTask(deps BoardDeps) *PurgeArchivedTask {
	return &PurgeArchivedTask{deps: deps}
}

// Execute deletes the archived task. Returns ErrTaskNotFound if it is not archived.
func (uc *PurgeArchivedTask) Execute(_ context.Context, in ArchiveTaskInput) error {
	_, _, err := uc.deps.apply(func(e *engine.Engine) error {
		task, err := requireArchived(e, in.TaskID)
		if err != nil {
			return err
		}
		return e.DeleteArchivedTask(task.ID)
	})
	return err
}
