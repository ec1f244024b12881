// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kanban-board/kanban/internal/domain"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	fs            afero.Fs
	kanbanDir     string // Path to the project .kanban directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/kanban)
}

// NewLoader creates a new Loader reading from the OS filesystem.
func NewLoader(kanbanDir string) *Loader {
	return &Loader{
		fs:            afero.NewOsFs(),
		kanbanDir:     kanbanDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewLoaderWithFs creates a new Loader with a custom filesystem and global
// config directory. This is useful for testing.
func NewLoaderWithFs(fs afero.Fs, kanbanDir, globalConfDir string) *Loader {
	return &Loader{
		fs:            fs,
		kanbanDir:     kanbanDir,
		globalConfDir: globalConfDir,
	}
}

// DefaultGlobalConfigDir returns the default global config directory.
func DefaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalKanbanDir(configHome)
}

// Load returns the merged configuration.
// Precedence: default <- global <- project.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	project, err := l.LoadProject()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if project != nil {
		base = mergeConfigs(base, project)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadProject returns only the project configuration.
func (l *Loader) LoadProject() (*domain.Config, error) {
	return l.loadFile(filepath.Join(l.kanbanDir, domain.ConfigFileName))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
// Values of the wrong type are ignored with a warning.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	section := func(name string, value any, handle func(key string, v any) bool) {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("[%s] must be a table", name))
			return
		}
		for k, v := range m {
			if !handle(k, v) {
				warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", name, k))
			}
		}
	}
	badValue := func(sec, key string, v any) {
		warnings = append(warnings, fmt.Sprintf("invalid value for %s.%s: %v", sec, key, v))
	}

	for name, value := range raw {
		switch name {
		case "board":
			section(name, value, func(k string, v any) bool {
				switch k {
				case "completion_column":
					if s, ok := v.(string); ok && s != "" {
						res.Board.CompletionColumn = s
					} else {
						badValue(name, k, v)
					}
				case "activity_limit":
					if n, ok := v.(int64); ok && n > 0 {
						res.Board.ActivityLimit = int(n)
					} else {
						badValue(name, k, v)
					}
				default:
					return false
				}
				return true
			})
		case "ai":
			section(name, value, func(k string, v any) bool {
				switch k {
				case "model":
					if s, ok := v.(string); ok {
						res.AI.Model = s
					} else {
						badValue(name, k, v)
					}
				case "api_key_env":
					if s, ok := v.(string); ok {
						res.AI.APIKeyEnv = s
					} else {
						badValue(name, k, v)
					}
				default:
					return false
				}
				return true
			})
		case "log":
			section(name, value, func(k string, v any) bool {
				switch k {
				case "level":
					if s, ok := v.(string); ok && validLogLevels[s] {
						res.Log.Level = s
					} else {
						badValue(name, k, v)
					}
				default:
					return false
				}
				return true
			})
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", name))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// mergeConfigs merges two configs, with override taking precedence.
// Zero values in override leave base untouched.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		AI:       base.AI,
		Log:      base.Log,
		Board:    base.Board,
		Warnings: append([]string{}, base.Warnings...),
	}
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Board.CompletionColumn != "" {
		result.Board.CompletionColumn = override.Board.CompletionColumn
	}
	if override.Board.ActivityLimit > 0 {
		result.Board.ActivityLimit = override.Board.ActivityLimit
	}
	if override.AI.Model != "" {
		result.AI.Model = override.AI.Model
	}
	if override.AI.APIKeyEnv != "" {
		result.AI.APIKeyEnv = override.AI.APIKeyEnv
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	return result
}
