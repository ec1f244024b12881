package config

import (
	"errors"
	"path/filepath"

	"github.com/kanban-board/kanban/internal/domain"
	"github.com/spf13/afero"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	fs            afero.Fs
	kanbanDir     string // Path to the project .kanban directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/kanban)
}

// NewManager creates a new Manager on the OS filesystem.
func NewManager(kanbanDir string) *Manager {
	return &Manager{
		fs:            afero.NewOsFs(),
		kanbanDir:     kanbanDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewManagerWithFs creates a new Manager with a custom filesystem and global
// config directory. This is useful for testing.
func NewManagerWithFs(fs afero.Fs, kanbanDir, globalConfDir string) *Manager {
	return &Manager{
		fs:            fs,
		kanbanDir:     kanbanDir,
		globalConfDir: globalConfDir,
	}
}

// ProjectConfigInfo returns information about the project config file.
func (m *Manager) ProjectConfigInfo() domain.ConfigInfo {
	return m.configInfo(filepath.Join(m.kanbanDir, domain.ConfigFileName))
}

// GlobalConfigInfo returns information about the global config file.
func (m *Manager) GlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return m.configInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

func (m *Manager) configInfo(path string) domain.ConfigInfo {
	content, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return domain.ConfigInfo{Path: path}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitProjectConfig creates the project config file with the default template.
func (m *Manager) InitProjectConfig(cfg *domain.Config) error {
	return m.initConfig(m.kanbanDir, cfg)
}

// InitGlobalConfig creates the global config file with the default template.
func (m *Manager) InitGlobalConfig(cfg *domain.Config) error {
	if m.globalConfDir == "" {
		return errors.New("global config directory not available")
	}
	return m.initConfig(m.globalConfDir, cfg)
}

// initConfig creates dir/config.toml unless it exists.
func (m *Manager) initConfig(dir string, cfg *domain.Config) error {
	path := filepath.Join(dir, domain.ConfigFileName)
	if exists, _ := afero.Exists(m.fs, path); exists {
		return domain.ErrConfigExists
	}
	if err := m.fs.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return afero.WriteFile(m.fs, path, []byte(domain.RenderConfigTemplate(cfg)), 0o600)
}
