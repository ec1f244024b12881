// Package logging writes engine and use case events to log files:
// every entry goes to .kanban/logs/board.log and task entries are
// copied to .kanban/logs/<task-id>.log.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kanban-board/kanban/internal/domain"
)

var _ domain.Logger = (*Logger)(nil)

// Logger is a leveled domain.Logger backed by append-only files.
// The board log stays open until Close; a task log is opened and closed
// around each write, so long sessions don't accumulate descriptors.
type Logger struct {
	now       func() time.Time
	board     *os.File
	kanbanDir string
	mu        sync.Mutex
	level     slog.Level
}

// New returns a Logger for the given kanban directory.
// An empty kanbanDir disables logging.
func New(kanbanDir string, level slog.Level) *Logger {
	return &Logger{
		now:       time.Now,
		kanbanDir: kanbanDir,
		level:     level,
	}
}

// ParseLevel maps a config level name to slog.Level, defaulting to info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Info logs at info level. An empty taskID marks a board event.
func (l *Logger) Info(taskID, category, msg string) {
	l.write(slog.LevelInfo, taskID, category, msg)
}

func (l *Logger) Debug(taskID, category, msg string) {
	l.write(slog.LevelDebug, taskID, category, msg)
}

func (l *Logger) Warn(taskID, category, msg string) {
	l.write(slog.LevelWarn, taskID, category, msg)
}

func (l *Logger) Error(taskID, category, msg string) {
	l.write(slog.LevelError, taskID, category, msg)
}

// Close closes the board log. Later writes reopen it.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.board == nil {
		return nil
	}
	err := l.board.Close()
	l.board = nil
	return err
}

// write formats one line as
// [2025-12-30 09:32:51] [INFO] [task-abc|board] [category] message
func (l *Logger) write(level slog.Level, taskID, category, msg string) {
	if l.kanbanDir == "" || level < l.level {
		return
	}

	scope := taskID
	if scope == "" {
		scope = "board"
	}
	line := fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		l.now().Format(time.DateTime), level, scope, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.board == nil {
		l.board, _ = openLog(domain.BoardLogPath(l.kanbanDir))
	}
	if l.board != nil {
		_, _ = l.board.WriteString(line)
	}

	if taskID == "" {
		return
	}
	f, err := openLog(domain.TaskLogPath(l.kanbanDir, taskID))
	if err != nil {
		return
	}
	_, _ = f.WriteString(line)
	_ = f.Close()
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Owner and group may read logs
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
