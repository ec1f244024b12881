package usecase

import (
	"context"
	"fmt"

	"github.com/kanban-board/kanban/internal/domain"
)

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	Config *domain.Config // Values rendered into the template (nil = defaults)
	Global bool           // If true, initialize global config; otherwise project config
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path string // Path to the created config file
}

// InitConfig generates a configuration file template.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{configManager: configManager}
}

// Execute creates a configuration file with the default template.
// Returns domain.ErrConfigExists if the file is already there.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	cfg := in.Config
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}

	var info domain.ConfigInfo
	var err error
	if in.Global {
		info = uc.configManager.GlobalConfigInfo()
		err = uc.configManager.InitGlobalConfig(cfg)
	} else {
		info = uc.configManager.ProjectConfigInfo()
		err = uc.configManager.InitProjectConfig(cfg)
	}
	if err != nil {
		return nil, err
	}
	return &InitConfigOutput{Path: info.Path}, nil
}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	EffectiveConfig *domain.Config    // Merged configuration in effect
	GlobalConfig    domain.ConfigInfo // Global config file info
	ProjectConfig   domain.ConfigInfo // Project config file info
}

// ShowConfig displays configuration file information.
type ShowConfig struct {
	configManager domain.ConfigManager
	configLoader  domain.ConfigLoader
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, configLoader domain.ConfigLoader) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		configLoader:  configLoader,
	}
}

// Execute returns both config files and the merged result.
func (uc *ShowConfig) Execute(_ context.Context) (*ShowConfigOutput, error) {
	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &ShowConfigOutput{
		GlobalConfig:    uc.configManager.GlobalConfigInfo(),
		ProjectConfig:   uc.configManager.ProjectConfigInfo(),
		EffectiveConfig: cfg,
	}, nil
}
