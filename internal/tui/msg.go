package tui

import "github.com/kanban-board/kanban/internal/domain"

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgBoardLoaded is sent when the board is read from the store.
type MsgBoardLoaded struct {
	State            *domain.BoardState
	CompletionColumn string
	Today            domain.Date // Reference date for overdue marks
}

func (MsgBoardLoaded) sealed() {}

// MsgBoardChanged is sent after a mutation was saved.
// FocusTaskID, if set, moves the cursor onto that task after reload.
type MsgBoardChanged struct {
	Status      string
	FocusTaskID string
}

func (MsgBoardChanged) sealed() {}

// MsgAssistDone is sent when an assistant request finished and its
// result was applied to the board.
type MsgAssistDone struct {
	Op     string
	TaskID string
}

func (MsgAssistDone) sealed() {}

// MsgInsight carries the project insight text.
type MsgInsight struct {
	Text string
}

func (MsgInsight) sealed() {}

// MsgError is sent when an error occurs.
// Assist marks failures of background assistant requests.
type MsgError struct {
	Err    error
	Assist bool
}

func (MsgError) sealed() {}
