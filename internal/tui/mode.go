// Package tui provides the interactive terminal board for kanban.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal  Mode = iota // Board navigation mode
	ModeConfirm             // Confirmation dialog mode
	ModeInput               // Single-line text input mode
	ModeHelp                // Help overlay mode
	ModeDetail              // Task detail view mode
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeConfirm:
		return "confirm"
	case ModeInput:
		return "input"
	case ModeHelp:
		return "help"
	case ModeDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	switch m {
	case ModeInput:
		return true
	case ModeNormal, ModeConfirm, ModeHelp, ModeDetail:
		return false
	}
	return false
}

// ConfirmAction represents the type of action requiring confirmation.
type ConfirmAction int

const (
	ConfirmNone         ConfirmAction = iota
	ConfirmDeleteTask                 // Delete task
	ConfirmDeleteColumn               // Delete column, merging its tasks
)

// String returns a human-readable description of the action.
func (a ConfirmAction) String() string {
	switch a {
	case ConfirmNone:
		return ""
	case ConfirmDeleteTask:
		return "delete task"
	case ConfirmDeleteColumn:
		return "delete column"
	}
	return ""
}

// InputAction identifies what the text input submits to.
type InputAction int

const (
	InputNone         InputAction = iota
	InputNewTask                  // Title of a new task in the current column
	InputRenameTask               // New title of the selected task
	InputNewColumn                // Title of a new column
	InputRenameColumn             // New title of the current column
)

// Prompt returns the dialog title for the action.
func (a InputAction) Prompt() string {
	switch a {
	case InputNone:
		return ""
	case InputNewTask:
		return "New Task"
	case InputRenameTask:
		return "Rename Task"
	case InputNewColumn:
		return "New Column"
	case InputRenameColumn:
		return "Rename Column"
	}
	return ""
}
