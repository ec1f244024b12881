// Package engine implements the board mutation engine.
//
// An Engine owns one board state. Every operation builds a new
// domain.BoardState and publishes it atomically; snapshots handed out
// earlier are never modified, so readers never observe a partial update.
// Operations on missing tasks or columns are silent no-ops. Only
// precondition violations (blank titles, deleting the last column,
// invalid task data) are reported as errors, and those leave the state untouched.
package engine

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/kanban-board/kanban/internal/domain"
)

// Options configures an Engine.
type Options struct {
	CompletionColumn string // Restore target for archived tasks
	ActivityLimit    int    // Board activity log cap (<= 0 uses the default)
}

// DefaultOptions returns the default engine options.
func DefaultOptions() Options {
	return Options{
		CompletionColumn: domain.DefaultCompletionColumn,
		ActivityLimit:    domain.DefaultActivityLimit,
	}
}

// OptionsFromConfig derives engine options from the application config.
func OptionsFromConfig(cfg *domain.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	if cfg.Board.CompletionColumn != "" {
		opts.CompletionColumn = cfg.Board.CompletionColumn
	}
	if cfg.Board.ActivityLimit > 0 {
		opts.ActivityLimit = cfg.Board.ActivityLimit
	}
	return opts
}

// Engine is the board state container.
// Fields are ordered to minimize memory padding.
type Engine struct {
	clock   domain.Clock
	ids     domain.IDGenerator
	logger  domain.Logger
	current atomic.Pointer[domain.BoardState]
	opts    Options
	mu      sync.Mutex // serializes writers
}

// New creates an Engine holding a copy of initial.
// The state is normalized and validated; an invalid state is rejected with
// an error wrapping domain.ErrInvalidBoard.
func New(initial *domain.BoardState, opts Options, clock domain.Clock, ids domain.IDGenerator, logger domain.Logger) (*Engine, error) {
	if initial == nil {
		initial = domain.NewBoardState()
	}
	state := initial.Clone()
	state.Normalize()
	if err := state.Validate(); err != nil {
		return nil, err
	}

	if opts.ActivityLimit <= 0 {
		opts.ActivityLimit = domain.DefaultActivityLimit
	}
	if opts.CompletionColumn == "" {
		opts.CompletionColumn = domain.DefaultCompletionColumn
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}

	e := &Engine{
		clock:  clock,
		ids:    ids,
		logger: logger,
		opts:   opts,
	}
	if len(state.Activity) > opts.ActivityLimit {
		state.Activity = state.Activity[:opts.ActivityLimit]
	}
	e.current.Store(state)
	return e, nil
}

// Snapshot returns the current state. The returned value must not be modified.
func (e *Engine) Snapshot() *domain.BoardState {
	return e.current.Load()
}

// Options returns the engine options.
func (e *Engine) Options() Options {
	return e.opts
}

// Task returns a copy of the on-board task with the given ID.
func (e *Engine) Task(taskID string) (domain.Task, bool) {
	t := e.Snapshot().Board.Task(taskID)
	if t == nil {
		return domain.Task{}, false
	}
	return t.Clone(), true
}

// Column returns a copy of the column with the given ID.
func (e *Engine) Column(columnID string) (domain.Column, bool) {
	c := e.Snapshot().Board.Column(columnID)
	if c == nil {
		return domain.Column{}, false
	}
	return c.Clone(), true
}

// ArchivedTask returns a copy of the archived task with the given ID.
func (e *Engine) ArchivedTask(taskID string) (domain.Task, bool) {
	t := e.Snapshot().ArchivedTask(taskID)
	if t == nil {
		return domain.Task{}, false
	}
	return t.Clone(), true
}

// txn is one in-flight state transition.
type txn struct {
	e     *Engine
	state *domain.BoardState
	lines []logLine // Sent to the logger once the state is published
}

type logLine struct {
	taskID string
	msg    string
}

// mutate runs fn against a private copy of the current state and publishes
// the copy if fn returns (true, nil). Activity recorded through the txn is
// part of the published state and reaches the logger only after publishing.
func (e *Engine) mutate(fn func(tx *txn) (bool, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx := &txn{e: e, state: e.current.Load().Clone()}
	changed, err := fn(tx)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := tx.state.Validate(); err != nil {
		// Unreachable through the public operations; refuse to publish.
		e.logger.Error("", "engine", fmt.Sprintf("rejected invalid state: %v", err))
		return err
	}
	e.current.Store(tx.state)
	for _, l := range tx.lines {
		e.logger.Info(l.taskID, "activity", l.msg)
	}
	return nil
}
