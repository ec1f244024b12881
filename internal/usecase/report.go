package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kanban-board/kanban/internal/domain"
)

// BoardStatsOutput contains the board summary.
type BoardStatsOutput struct {
	Summary domain.BoardSummary
	Today   domain.Date
}

// BoardStats computes dashboard statistics for the board.
type BoardStats struct {
	deps BoardDeps
}

// NewBoardStats creates a new BoardStats use case.
func NewBoardStats(deps BoardDeps) *BoardStats {
	return &BoardStats{deps: deps}
}

// Execute summarizes the board as of today's date.
func (uc *BoardStats) Execute(_ context.Context) (*BoardStatsOutput, error) {
	e, err := uc.deps.open()
	if err != nil {
		return nil, err
	}
	today := domain.DateOf(uc.deps.Clock.Now())
	return &BoardStatsOutput{
		Summary: domain.Summarize(e.Snapshot(), today, e.Options().CompletionColumn),
		Today:   today,
	}, nil
}

// ExportBoardOutput contains the exported document.
type ExportBoardOutput struct {
	JSON []byte
}

// ExportBoard renders the board as a JSON array of columns.
// Archive and board activity are not part of the export.
type ExportBoard struct {
	deps BoardDeps
}

// NewExportBoard creates a new ExportBoard use case.
func NewExportBoard(deps BoardDeps) *ExportBoard {
	return &ExportBoard{deps: deps}
}

// Execute serializes the board, pretty-printed.
func (uc *ExportBoard) Execute(_ context.Context) (*ExportBoardOutput, error) {
	e, err := uc.deps.open()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(e.Snapshot().Board, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal board: %w", err)
	}
	return &ExportBoardOutput{JSON: append(data, '\n')}, nil
}
