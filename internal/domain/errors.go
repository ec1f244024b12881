package domain

import "errors"

// Domain errors.
var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrLastColumn      = errors.New("cannot delete the last column")
	ErrInvalidTask     = errors.New("invalid task")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidDate     = errors.New("invalid date (want YYYY-MM-DD)")
	ErrInvalidBoard    = errors.New("invalid board state")
	ErrTaskNotFound    = errors.New("task not found")
	ErrColumnNotFound  = errors.New("column not found")
	ErrAmbiguousTaskID = errors.New("task id prefix matches more than one task")
	ErrNotInitialized  = errors.New("board not initialized (run 'kanban init' first)")
	ErrStaleTask       = errors.New("task changed while waiting for the assistant")
	ErrEmptyFile       = errors.New("file is empty")
	ErrNoTasksInFile   = errors.New("no tasks found in file")
	ErrSubtaskNotFound = errors.New("subtask not found")
	ErrConfigExists    = errors.New("config file already exists")
	ErrNoAssistant     = errors.New("AI assistant not configured")
)

// AssistantError reports a failure of the AI assistant.
// Board state is never touched when one is returned.
type AssistantError struct {
	Err error  // Underlying cause (may be nil)
	Op  string // Assistant operation, e.g. "suggest priority"
	Msg string // User-facing message
}

// NewAssistantError creates an AssistantError.
func NewAssistantError(op, msg string, err error) *AssistantError {
	return &AssistantError{Op: op, Msg: msg, Err: err}
}

func (e *AssistantError) Error() string {
	if e.Err != nil {
		return e.Op + ": " + e.Msg + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Msg
}

func (e *AssistantError) Unwrap() error {
	return e.Err
}
