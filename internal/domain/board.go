package domain

import (
	"fmt"
	"time"
)

// Column is a named, ordered bucket of tasks.
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Tasks []Task `json:"tasks"`
}

// Board is the ordered set of columns, left to right.
type Board []Column

// ActivityLogEntry is a board-wide activity record.
type ActivityLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	ID        string    `json:"id"`
	Message   string    `json:"message"`
}

// TaskActivityLogEntry is an activity record scoped to one task.
type TaskActivityLogEntry = ActivityLogEntry

// TaskCreatedMessage is the first activity entry of every new task.
const TaskCreatedMessage = "Task created"

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for i, col := range b {
		out[i] = col.Clone()
	}
	return out
}

// Clone returns a deep copy of the column.
func (c Column) Clone() Column {
	out := Column{ID: c.ID, Title: c.Title, Tasks: make([]Task, len(c.Tasks))}
	for i, t := range c.Tasks {
		out.Tasks[i] = t.Clone()
	}
	return out
}

// ColumnIndex returns the index of the column with the given ID, or -1.
func (b Board) ColumnIndex(columnID string) int {
	for i := range b {
		if b[i].ID == columnID {
			return i
		}
	}
	return -1
}

// Column returns the column with the given ID, or nil.
func (b Board) Column(columnID string) *Column {
	if i := b.ColumnIndex(columnID); i >= 0 {
		return &b[i]
	}
	return nil
}

// FindTask locates a task by ID.
// Returns the column index and task index, or -1, -1 if absent.
func (b Board) FindTask(taskID string) (int, int) {
	for ci := range b {
		if ti := b[ci].TaskIndex(taskID); ti >= 0 {
			return ci, ti
		}
	}
	return -1, -1
}

// Task returns the task with the given ID, or nil.
func (b Board) Task(taskID string) *Task {
	ci, ti := b.FindTask(taskID)
	if ci < 0 {
		return nil
	}
	return &b[ci].Tasks[ti]
}

// TaskIndex returns the index of the task within the column, or -1.
func (c *Column) TaskIndex(taskID string) int {
	for i := range c.Tasks {
		if c.Tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

// AllTasks returns every task on the board in column order.
func (b Board) AllTasks() []Task {
	var tasks []Task
	for _, col := range b {
		tasks = append(tasks, col.Tasks...)
	}
	return tasks
}

// TaskCount returns the number of tasks on the board.
func (b Board) TaskCount() int {
	n := 0
	for _, col := range b {
		n += len(col.Tasks)
	}
	return n
}

// DefaultBoard returns the seed board used for a fresh state.
func DefaultBoard() Board {
	return Board{
		{ID: "todo", Title: "To Do", Tasks: []Task{}},
		{ID: "inprogress", Title: "In Progress", Tasks: []Task{}},
		{ID: "done", Title: "Done", Tasks: []Task{}},
	}
}

// NormalizeBoard fills absent sequences in every column and task.
func NormalizeBoard(b Board) {
	for ci := range b {
		if b[ci].Tasks == nil {
			b[ci].Tasks = []Task{}
		}
		for ti := range b[ci].Tasks {
			NormalizeTask(&b[ci].Tasks[ti])
		}
	}
}

// ValidateState checks the structural invariants of a board and its archive:
// at least one column, unique column IDs, task IDs unique across board and
// archive, every on-board task's ColumnID matching its containing column,
// and every task passing Task.Validate.
// The returned error wraps ErrInvalidBoard.
func ValidateState(b Board, archive []Task) error {
	if len(b) == 0 {
		return fmt.Errorf("%w: board has no columns", ErrInvalidBoard)
	}
	columns := make(map[string]bool, len(b))
	tasks := make(map[string]bool)
	for _, col := range b {
		if col.ID == "" {
			return fmt.Errorf("%w: column with empty id", ErrInvalidBoard)
		}
		if columns[col.ID] {
			return fmt.Errorf("%w: duplicate column id %q", ErrInvalidBoard, col.ID)
		}
		columns[col.ID] = true
		for i := range col.Tasks {
			t := &col.Tasks[i]
			if tasks[t.ID] {
				return fmt.Errorf("%w: duplicate task id %q", ErrInvalidBoard, t.ID)
			}
			tasks[t.ID] = true
			if t.ColumnID != col.ID {
				return fmt.Errorf("%w: task %q has columnId %q but is in column %q",
					ErrInvalidBoard, t.ID, t.ColumnID, col.ID)
			}
			if err := t.Validate(); err != nil {
				return fmt.Errorf("%w: task %q: %w", ErrInvalidBoard, t.ID, err)
			}
		}
	}
	for i := range archive {
		t := &archive[i]
		if tasks[t.ID] {
			return fmt.Errorf("%w: duplicate task id %q", ErrInvalidBoard, t.ID)
		}
		tasks[t.ID] = true
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: archived task %q: %w", ErrInvalidBoard, t.ID, err)
		}
	}
	return nil
}

// BoardState is a complete snapshot: the board, its activity log and the archive.
// Snapshots handed out by the engine are shared; callers must not modify them.
type BoardState struct {
	Board    Board              `json:"board"`
	Activity []ActivityLogEntry `json:"activity"` // Newest first
	Archive  []Task             `json:"archive"`  // Most recently archived first
}

// NewBoardState returns a state seeded with the default board.
func NewBoardState() *BoardState {
	return &BoardState{
		Board:    DefaultBoard(),
		Activity: []ActivityLogEntry{},
		Archive:  []Task{},
	}
}

// Clone returns a deep copy of the state.
func (s *BoardState) Clone() *BoardState {
	out := &BoardState{
		Board:    s.Board.Clone(),
		Activity: append(make([]ActivityLogEntry, 0, len(s.Activity)), s.Activity...),
		Archive:  make([]Task, len(s.Archive)),
	}
	for i, t := range s.Archive {
		out.Archive[i] = t.Clone()
	}
	return out
}

// ArchivedTask returns the archived task with the given ID, or nil.
func (s *BoardState) ArchivedTask(taskID string) *Task {
	for i := range s.Archive {
		if s.Archive[i].ID == taskID {
			return &s.Archive[i]
		}
	}
	return nil
}

// Normalize fills absent sequences throughout the state.
func (s *BoardState) Normalize() {
	NormalizeBoard(s.Board)
	if s.Activity == nil {
		s.Activity = []ActivityLogEntry{}
	}
	if s.Archive == nil {
		s.Archive = []Task{}
	}
	for i := range s.Archive {
		NormalizeTask(&s.Archive[i])
	}
}

// Validate checks the invariants of the whole state.
func (s *BoardState) Validate() error {
	return ValidateState(s.Board, s.Archive)
}
