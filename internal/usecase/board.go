// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/kanban-board/kanban/internal/domain"
	"github.com/kanban-board/kanban/internal/engine"
)

// BoardDeps bundles the collaborators shared by use cases that read or
// change the persisted board.
// Fields are ordered to minimize memory padding.
type BoardDeps struct {
	Store  domain.BoardStore
	Config domain.ConfigLoader // Optional; defaults apply when nil
	Clock  domain.Clock
	IDs    domain.IDGenerator
	Logger domain.Logger // Optional
}

func (d BoardDeps) config() (*domain.Config, error) {
	if d.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	cfg, err := d.Config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (d BoardDeps) logger() domain.Logger {
	if d.Logger == nil {
		return domain.NopLogger{}
	}
	return d.Logger
}

// open loads the stored board into a fresh engine.
func (d BoardDeps) open() (*engine.Engine, error) {
	cfg, err := d.config()
	if err != nil {
		return nil, err
	}
	state, err := d.Store.Load()
	if err != nil {
		if errors.Is(err, domain.ErrNotInitialized) {
			return nil, err
		}
		return nil, fmt.Errorf("load board: %w", err)
	}
	return d.newEngine(state, cfg, d.logger())
}

func (d BoardDeps) newEngine(state *domain.BoardState, cfg *domain.Config, logger domain.Logger) (*engine.Engine, error) {
	e, err := engine.New(state, engine.OptionsFromConfig(cfg), d.Clock, d.IDs, logger)
	if err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}
	return e, nil
}

// apply runs change against the stored board inside one store update and
// saves the result if the engine published a new snapshot. Activity lines
// reach the logger only once the store has accepted the new state.
func (d BoardDeps) apply(change func(e *engine.Engine) error) (*domain.BoardState, bool, error) {
	cfg, err := d.config()
	if err != nil {
		return nil, false, err
	}

	activity := &activityBuffer{next: d.logger()}
	var (
		after   *domain.BoardState
		changed bool
		loaded  bool
		stepErr error
	)
	err = d.Store.Update(func(state *domain.BoardState) (*domain.BoardState, error) {
		loaded = true
		e, err := d.newEngine(state, cfg, activity)
		if err != nil {
			stepErr = err
			return nil, err
		}
		before := e.Snapshot()
		if err := change(e); err != nil {
			stepErr = err
			return nil, err
		}
		after = e.Snapshot()
		if after == before {
			return nil, nil
		}
		changed = true
		return after, nil
	})
	switch {
	case err == nil:
	case stepErr != nil:
		return nil, false, stepErr
	case !loaded && errors.Is(err, domain.ErrNotInitialized):
		return nil, false, err
	case !loaded:
		return nil, false, fmt.Errorf("load board: %w", err)
	default:
		return nil, false, fmt.Errorf("save board: %w", err)
	}

	activity.flush()
	return after, changed, nil
}

// activityBuffer holds activity lines until the change they describe is
// stored. Other categories pass straight through.
type activityBuffer struct {
	next  domain.Logger
	lines []logLine
}

type logLine struct {
	taskID, msg string
}

func (b *activityBuffer) Info(taskID, category, msg string) {
	if category == "activity" {
		b.lines = append(b.lines, logLine{taskID: taskID, msg: msg})
		return
	}
	b.next.Info(taskID, category, msg)
}

func (b *activityBuffer) Debug(taskID, category, msg string) { b.next.Debug(taskID, category, msg) }
func (b *activityBuffer) Warn(taskID, category, msg string)  { b.next.Warn(taskID, category, msg) }
func (b *activityBuffer) Error(taskID, category, msg string) { b.next.Error(taskID, category, msg) }

func (b *activityBuffer) flush() {
	for _, l := range b.lines {
		b.next.Info(l.taskID, "activity", l.msg)
	}
	b.lines = nil
}

// ShowBoardOutput contains the current board.
type ShowBoardOutput struct {
	State   *domain.BoardState
	Options engine.Options
}

// ShowBoard loads the board for display.
type ShowBoard struct {
	deps BoardDeps
}

// NewShowBoard creates a new ShowBoard use case.
func NewShowBoard(deps BoardDeps) *ShowBoard {
	return &ShowBoard{deps: deps}
}

// Execute returns the stored board state.
func (uc *ShowBoard) Execute(_ context.Context) (*ShowBoardOutput, error) {
	e, err := uc.deps.open()
	if err != nil {
		return nil, err
	}
	return &ShowBoardOutput{State: e.Snapshot(), Options: e.Options()}, nil
}

// InitBoardOutput contains the result of InitBoard.
type InitBoardOutput struct {
	Created bool // False if a board already existed
}

// InitBoard creates the default board if none is stored.
type InitBoard struct {
	storeInit domain.StoreInitializer
}

// NewInitBoard creates a new InitBoard use case.
func NewInitBoard(storeInit domain.StoreInitializer) *InitBoard {
	return &InitBoard{storeInit: storeInit}
}

// Execute stores the default board (To Do, In Progress, Done) unless one exists.
func (uc *InitBoard) Execute(_ context.Context) (*InitBoardOutput, error) {
	created, err := uc.storeInit.Initialize(domain.NewBoardState())
	if err != nil {
		return nil, fmt.Errorf("initialize board store: %w", err)
	}
	return &InitBoardOutput{Created: created}, nil
}
