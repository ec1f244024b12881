package usecase

import (
	"context"
	"fmt"

	"github.com/kanban-board/kanban/internal/domain"
	"github.com/kanban-board/kanban/internal/engine"
)

// CreateTasksFromFileInput contains the parameters for creating tasks from a file.
type CreateTasksFromFileInput struct {
	Content string // File content (Markdown with frontmatter)
	Column  string // Default column for drafts without one (empty = first column)
	DryRun  bool   // If true, parse and resolve columns without creating tasks
}

// CreateTasksFromFileOutput contains the result of creating tasks from a file.
type CreateTasksFromFileOutput struct {
	Tasks []domain.Task // Created tasks (or tasks that would be created in dry-run mode)
}

// CreateTasksFromFile is the use case for creating tasks from a file.
type CreateTasksFromFile struct {
	deps BoardDeps
}

// NewCreateTasksFromFile creates a new CreateTasksFromFile use case.
func NewCreateTasksFromFile(deps BoardDeps) *CreateTasksFromFile {
	return &CreateTasksFromFile{deps: deps}
}

// Execute creates every draft in the file as one change: if any draft fails,
// no task is created. Tasks are added in file order, so the last draft of a
// column ends up on top.
func (uc *CreateTasksFromFile) Execute(_ context.Context, in CreateTasksFromFileInput) (*CreateTasksFromFileOutput, error) {
	drafts, err := domain.ParseTaskDrafts(in.Content)
	if err != nil {
		return nil, err
	}

	if in.DryRun {
		return uc.dryRun(drafts, in.Column)
	}

	result := &CreateTasksFromFileOutput{Tasks: make([]domain.Task, 0, len(drafts))}
	_, _, err = uc.deps.apply(func(e *engine.Engine) error {
		for i, draft := range drafts {
			col, err := resolveColumn(e.Snapshot().Board, draftColumn(draft, in.Column))
			if err != nil {
				return fmt.Errorf("task %d: %w", i+1, err)
			}
			task, err := e.AddTask(col.ID, draft.Title)
			if err != nil {
				return fmt.Errorf("task %d: %w", i+1, err)
			}
			if err := e.ApplyFieldUpdate(task.ID, draft.Updates()...); err != nil {
				return fmt.Errorf("task %d: %w", i+1, err)
			}
			created, _ := e.Task(task.ID)
			result.Tasks = append(result.Tasks, created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, task := range result.Tasks {
		uc.deps.logger().Info(task.ID, "task", fmt.Sprintf("created from file: %q", task.Title))
	}
	return result, nil
}

// dryRun resolves columns and returns the tasks that would be created.
func (uc *CreateTasksFromFile) dryRun(drafts []domain.TaskDraft, defaultColumn string) (*CreateTasksFromFileOutput, error) {
	e, err := uc.deps.open()
	if err != nil {
		return nil, err
	}
	board := e.Snapshot().Board

	result := &CreateTasksFromFileOutput{Tasks: make([]domain.Task, 0, len(drafts))}
	for i, draft := range drafts {
		col, err := resolveColumn(board, draftColumn(draft, defaultColumn))
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		task := domain.Task{
			ID:       fmt.Sprintf("#%d", i+1),
			Title:    draft.Title,
			ColumnID: col.ID,
		}
		domain.NormalizeTask(&task)
		for _, u := range draft.Updates() {
			if err := u.Apply(&task); err != nil {
				return nil, fmt.Errorf("task %d: %w", i+1, err)
			}
		}
		result.Tasks = append(result.Tasks, task)
	}
	return result, nil
}

func draftColumn(d domain.TaskDraft, fallback string) string {
	if d.Column != "" {
		return d.Column
	}
	return fallback
}
