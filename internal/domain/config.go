package domain

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Config represents the application configuration.
type Config struct {
	AI       AIConfig    // [ai] settings
	Log      LogConfig   // [log] settings
	Board    BoardConfig // [board] settings
	Warnings []string    `toml:"-"`
}

// BoardConfig holds engine settings from the [board] section.
type BoardConfig struct {
	CompletionColumn string // Column that restored tasks return to
	ActivityLimit    int    // Board activity log cap
}

// AIConfig holds assistant settings from the [ai] section.
type AIConfig struct {
	Model     string // Gemini model name
	APIKeyEnv string // Environment variable holding the API key
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string // Log level: debug, info, warn, error
}

// Default configuration values.
const (
	DefaultCompletionColumn = "done"
	DefaultActivityLimit    = 20
	DefaultAIModel          = "gemini-2.5-flash"
	DefaultAPIKeyEnv        = "GEMINI_API_KEY"
	DefaultLogLevel         = "info"
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Board: BoardConfig{
			CompletionColumn: DefaultCompletionColumn,
			ActivityLimit:    DefaultActivityLimit,
		},
		AI: AIConfig{
			Model:     DefaultAIModel,
			APIKeyEnv: DefaultAPIKeyEnv,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Directory and file names for kanban.
const (
	KanbanDirName  = ".kanban"     // Project data directory
	GlobalDirName  = "kanban"      // Directory under XDG_CONFIG_HOME
	ConfigFileName = "config.toml" // Config file name
	StoreFileName  = "board.json"  // Board state file name
	LogsDirName    = "logs"        // Log directory name
)

// ProjectKanbanDir returns the data directory for a project root.
func ProjectKanbanDir(root string) string {
	return filepath.Join(root, KanbanDirName)
}

// GlobalKanbanDir returns the global configuration directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalKanbanDir(configHome string) string {
	return filepath.Join(configHome, GlobalDirName)
}

// StorePath returns the path to the board state file.
func StorePath(kanbanDir string) string {
	return filepath.Join(kanbanDir, StoreFileName)
}

// BoardLogPath returns the path to the board-wide log file.
func BoardLogPath(kanbanDir string) string {
	return filepath.Join(kanbanDir, LogsDirName, "board.log")
}

// TaskLogPath returns the path to the log file of one task.
// Characters outside [A-Za-z0-9-_] are replaced so IDs cannot escape the directory.
func TaskLogPath(kanbanDir, taskID string) string {
	return filepath.Join(kanbanDir, LogsDirName, safeFileName(taskID)+".log")
}

func safeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}

// RenderConfigTemplate renders a commented config file with the given values.
func RenderConfigTemplate(cfg *Config) string {
	var b strings.Builder
	b.WriteString("# kanban configuration\n\n")
	b.WriteString("[board]\n")
	b.WriteString("# Column that restored tasks return to (falls back to the first column)\n")
	b.WriteString("completion_column = \"" + cfg.Board.CompletionColumn + "\"\n")
	b.WriteString("# Number of board activity entries kept\n")
	b.WriteString("activity_limit = " + strconv.Itoa(cfg.Board.ActivityLimit) + "\n\n")
	b.WriteString("[ai]\n")
	b.WriteString("model = \"" + cfg.AI.Model + "\"\n")
	b.WriteString("# Environment variable holding the Gemini API key (.env is read too)\n")
	b.WriteString("api_key_env = \"" + cfg.AI.APIKeyEnv + "\"\n\n")
	b.WriteString("[log]\n")
	b.WriteString("# debug, info, warn, error\n")
	b.WriteString("level = \"" + cfg.Log.Level + "\"\n")
	return b.String()
}
