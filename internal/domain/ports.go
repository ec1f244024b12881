package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BoardStore persists board state between process runs.
type BoardStore interface {
	// Load returns the stored state.
	// Returns ErrNotInitialized if nothing has been stored yet.
	Load() (*BoardState, error)

	// Update runs fn on the stored state and stores the state fn returns,
	// all as one step that excludes other updaters. A nil result stores
	// nothing. Errors from fn are returned unchanged.
	Update(fn func(state *BoardState) (*BoardState, error)) error
}

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store with the given state if it doesn't exist.
	// Returns true if the store was created by this call.
	Initialize(state *BoardState) (bool, error)
}

// AIAssistant pre-fills task fields from a text-generation service.
// Every method fails with *AssistantError.
type AIAssistant interface {
	// GenerateSubtasks breaks a task title into actionable subtask texts.
	GenerateSubtasks(ctx context.Context, title string) ([]string, error)

	// SuggestPriority proposes a priority for a task.
	SuggestPriority(ctx context.Context, title, description string) (Priority, error)

	// GenerateDescription writes a short description for a task title.
	GenerateDescription(ctx context.Context, title string) (string, error)

	// SuggestTags proposes categorization tags for a task.
	SuggestTags(ctx context.Context, title, description string) ([]string, error)

	// GenerateProjectInsight returns one productivity insight for a board summary.
	GenerateProjectInsight(ctx context.Context, summary BoardSummary) (string, error)
}

// Logger records engine and use case events.
// taskID is empty for board-level events.
type Logger interface {
	Info(taskID, category, msg string)
	Debug(taskID, category, msg string)
	Warn(taskID, category, msg string)
	Error(taskID, category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Info(_, _, _ string)  {}
func (NopLogger) Debug(_, _, _ string) {}
func (NopLogger) Warn(_, _, _ string)  {}
func (NopLogger) Error(_, _, _ string) {}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (project + global).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigInfo describes a configuration file on disk.
type ConfigInfo struct {
	Path    string // Absolute path
	Content string // File content (empty if missing)
	Exists  bool   // Whether the file exists
}

// ConfigManager inspects and creates configuration files.
type ConfigManager interface {
	// ProjectConfigInfo returns information about the project config file.
	ProjectConfigInfo() ConfigInfo

	// GlobalConfigInfo returns information about the global config file.
	GlobalConfigInfo() ConfigInfo

	// InitProjectConfig writes the default template to the project config file.
	// Returns ErrConfigExists if the file already exists.
	InitProjectConfig(cfg *Config) error

	// InitGlobalConfig writes the default template to the global config file.
	// Returns ErrConfigExists if the file already exists.
	InitGlobalConfig(cfg *Config) error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// IDGenerator produces opaque identifiers.
type IDGenerator interface {
	// NewID returns a fresh identifier starting with prefix, e.g. "task-".
	NewID(prefix string) string
}

// UUIDGenerator implements IDGenerator with random UUIDs.
type UUIDGenerator struct{}

// NewID returns prefix followed by a random UUID.
func (UUIDGenerator) NewID(prefix string) string {
	return prefix + uuid.NewString()
}

// ID prefixes.
const (
	TaskIDPrefix     = "task-"
	ColumnIDPrefix   = "col-"
	ActivityIDPrefix = "act-"
	SubtaskIDPrefix  = "sub-"
)
