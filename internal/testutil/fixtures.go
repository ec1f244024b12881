package testutil

import "github.com/kanban-board/kanban/internal/domain"

// NewTask returns a valid Medium-priority task in columnID.
func NewTask(id, columnID, title string) domain.Task {
	return domain.Task{
		ID:       id,
		Title:    title,
		Priority: domain.PriorityMedium,
		ColumnID: columnID,
		Subtasks: []domain.Subtask{},
		Tags:     []string{},
		Activity: []domain.TaskActivityLogEntry{},
	}
}

// SampleState returns the default three columns with task-a and task-b in
// "todo" and task-c in "done".
func SampleState() *domain.BoardState {
	s := domain.NewBoardState()
	s.Board[0].Tasks = []domain.Task{
		NewTask("task-a", "todo", "Write release notes"),
		NewTask("task-b", "todo", "Fix login redirect"),
	}
	s.Board[2].Tasks = []domain.Task{
		NewTask("task-c", "done", "Set up CI"),
	}
	return s
}
