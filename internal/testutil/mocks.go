// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kanban-board/kanban/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// SequentialIDs is a deterministic domain.IDGenerator: prefix + counter.
type SequentialIDs struct {
	counters map[string]int
	mu       sync.Mutex
}

// NewSequentialIDs creates a SequentialIDs generator.
func NewSequentialIDs() *SequentialIDs {
	return &SequentialIDs{counters: make(map[string]int)}
}

// NewID returns prefix followed by the next number for that prefix, starting at 1.
func (g *SequentialIDs) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counters[prefix]++
	return fmt.Sprintf("%s%d", prefix, g.counters[prefix])
}

// LogEntry is one call recorded by RecordingLogger.
type LogEntry struct {
	Level    string
	TaskID   string
	Category string
	Msg      string
}

// RecordingLogger is a domain.Logger that keeps every call.
type RecordingLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (l *RecordingLogger) record(level, taskID, category, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, TaskID: taskID, Category: category, Msg: msg})
}

func (l *RecordingLogger) Info(taskID, category, msg string)  { l.record("INFO", taskID, category, msg) }
func (l *RecordingLogger) Debug(taskID, category, msg string) { l.record("DEBUG", taskID, category, msg) }
func (l *RecordingLogger) Warn(taskID, category, msg string)  { l.record("WARN", taskID, category, msg) }
func (l *RecordingLogger) Error(taskID, category, msg string) { l.record("ERROR", taskID, category, msg) }

// MockBoardStore is an in-memory domain.BoardStore and domain.StoreInitializer.
// Update holds a mutex across fn, like the file store's exclusive lock.
type MockBoardStore struct {
	State     *domain.BoardState
	LoadErr   error
	SaveErr   error
	SaveCount int
	mu        sync.Mutex
}

// Load returns a copy of the stored state.
func (m *MockBoardStore) Load() (*domain.BoardState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLocked()
}

func (m *MockBoardStore) loadLocked() (*domain.BoardState, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.State == nil {
		return nil, domain.ErrNotInitialized
	}
	return m.State.Clone(), nil
}

// Update runs fn on a copy of the stored state and stores a copy of the result.
// SaveErr fails the store step after fn has run.
func (m *MockBoardStore) Update(fn func(*domain.BoardState) (*domain.BoardState, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, err := m.loadLocked()
	if err != nil {
		return err
	}
	next, err := fn(state)
	if err != nil || next == nil {
		return err
	}
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.State = next.Clone()
	m.SaveCount++
	return nil
}

// Initialize stores state if nothing is stored yet.
func (m *MockBoardStore) Initialize(state *domain.BoardState) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.State != nil {
		return false, nil
	}
	m.State = state.Clone()
	return true, nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config *domain.Config
	Err    error
}

// Load returns Config, or the defaults when Config is nil.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// LoadGlobal behaves like Load.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	return m.Load()
}

// MockAssistant is a test double for domain.AIAssistant.
// Each method returns its configured result, or Err when set.
// BeforeReturn, if set, runs before a successful result is returned,
// letting tests change the board while a call is "in flight".
type MockAssistant struct {
	Err          error
	BeforeReturn func()
	Priority     domain.Priority
	Description  string
	Insight      string
	Subtasks     []string
	Tags         []string
	Calls        []string
	LastSummary  domain.BoardSummary
}

func (m *MockAssistant) finish(call string) error {
	m.Calls = append(m.Calls, call)
	if m.Err != nil {
		return m.Err
	}
	if m.BeforeReturn != nil {
		m.BeforeReturn()
	}
	return nil
}

// GenerateSubtasks returns Subtasks.
func (m *MockAssistant) GenerateSubtasks(_ context.Context, _ string) ([]string, error) {
	if err := m.finish("subtasks"); err != nil {
		return nil, err
	}
	return m.Subtasks, nil
}

// SuggestPriority returns Priority.
func (m *MockAssistant) SuggestPriority(_ context.Context, _, _ string) (domain.Priority, error) {
	if err := m.finish("priority"); err != nil {
		return "", err
	}
	return m.Priority, nil
}

// GenerateDescription returns Description.
func (m *MockAssistant) GenerateDescription(_ context.Context, _ string) (string, error) {
	if err := m.finish("description"); err != nil {
		return "", err
	}
	return m.Description, nil
}

// SuggestTags returns Tags.
func (m *MockAssistant) SuggestTags(_ context.Context, _, _ string) ([]string, error) {
	if err := m.finish("tags"); err != nil {
		return nil, err
	}
	return m.Tags, nil
}

// GenerateProjectInsight returns Insight and records the summary.
func (m *MockAssistant) GenerateProjectInsight(_ context.Context, summary domain.BoardSummary) (string, error) {
	m.LastSummary = summary
	if err := m.finish("insight"); err != nil {
		return "", err
	}
	return m.Insight, nil
}

var (
	_ domain.Clock            = (*MockClock)(nil)
	_ domain.IDGenerator      = (*SequentialIDs)(nil)
	_ domain.Logger           = (*RecordingLogger)(nil)
	_ domain.BoardStore       = (*MockBoardStore)(nil)
	_ domain.StoreInitializer = (*MockBoardStore)(nil)
	_ domain.AIAssistant      = (*MockAssistant)(nil)
	_ domain.ConfigLoader     = (*MockConfigLoader)(nil)
)

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	InitProjectErr    error
	InitGlobalErr     error
	ProjectInfo       domain.ConfigInfo
	GlobalInfo        domain.ConfigInfo
	InitProjectCalled bool
	InitGlobalCalled  bool
}

// ProjectConfigInfo returns ProjectInfo.
func (m *MockConfigManager) ProjectConfigInfo() domain.ConfigInfo { return m.ProjectInfo }

// GlobalConfigInfo returns GlobalInfo.
func (m *MockConfigManager) GlobalConfigInfo() domain.ConfigInfo { return m.GlobalInfo }

// InitProjectConfig records the call and returns InitProjectErr.
func (m *MockConfigManager) InitProjectConfig(_ *domain.Config) error {
	m.InitProjectCalled = true
	return m.InitProjectErr
}

// InitGlobalConfig records the call and returns InitGlobalErr.
func (m *MockConfigManager) InitGlobalConfig(_ *domain.Config) error {
	m.InitGlobalCalled = true
	return m.InitGlobalErr
}

var _ domain.ConfigManager = (*MockConfigManager)(nil)
