package cli

import (
	"strings"
	"testing"

	"github.com/kanban-board/kanban/internal/app"
	"github.com/kanban-board/kanban/internal/domain"
	"github.com/kanban-board/kanban/internal/testutil"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfigTestContainer(loader *testutil.MockConfigLoader, manager *testutil.MockConfigManager) *app.Container {
	container := newTestContainer(&testutil.MockBoardStore{State: testutil.SampleState()})
	container.ConfigLoader = loader
	container.ConfigManager = manager
	return container
}

func TestConfigCommand_NoSubcommand_ShowsHelp(t *testing.T) {
	container := newConfigTestContainer(&testutil.MockConfigLoader{}, &testutil.MockConfigManager{})

	out, err := runCommand(t, newConfigCommand(container))

	require.NoError(t, err)
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "show")
	assert.Contains(t, out, "template")
	assert.Contains(t, out, "init")
}

func TestConfigShowCommand_DisplaysEffectiveConfig(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.Board.CompletionColumn = "shipped"
	cfg.Board.ActivityLimit = 50
	cfg.AI.Model = "gemini-2.5-pro"
	manager := &testutil.MockConfigManager{
		GlobalInfo:  domain.ConfigInfo{Path: "/home/user/.config/kanban/config.toml", Exists: false},
		ProjectInfo: domain.ConfigInfo{Path: "/work/.kanban/config.toml", Exists: true},
	}
	container := newConfigTestContainer(&testutil.MockConfigLoader{Config: cfg}, manager)

	out, err := runCommand(t, newConfigCommand(container), "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[Loaded from]")
	assert.Contains(t, out, "- /home/user/.config/kanban/config.toml (not found)")
	assert.Contains(t, out, "- /work/.kanban/config.toml\n")
	assert.Contains(t, out, "[Effective Config]")

	_, body, found := strings.Cut(out, "[Effective Config]\n")
	require.True(t, found)
	var decoded struct {
		Board struct {
			CompletionColumn string `toml:"completion_column"`
			ActivityLimit    int    `toml:"activity_limit"`
		} `toml:"board"`
		AI struct {
			Model     string `toml:"model"`
			APIKeyEnv string `toml:"api_key_env"`
		} `toml:"ai"`
		Log struct {
			Level string `toml:"level"`
		} `toml:"log"`
	}
	require.NoError(t, toml.Unmarshal([]byte(body), &decoded))
	assert.Equal(t, "shipped", decoded.Board.CompletionColumn)
	assert.Equal(t, 50, decoded.Board.ActivityLimit)
	assert.Equal(t, "gemini-2.5-pro", decoded.AI.Model)
	assert.Equal(t, domain.DefaultAPIKeyEnv, decoded.AI.APIKeyEnv)
	assert.Equal(t, domain.DefaultLogLevel, decoded.Log.Level)
}

func TestConfigShowCommand_ListsWarnings(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.Warnings = []string{"unknown key: board.wip_limit"}
	container := newConfigTestContainer(&testutil.MockConfigLoader{Config: cfg}, &testutil.MockConfigManager{})

	out, err := runCommand(t, newConfigCommand(container), "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[Warnings]\n- unknown key: board.wip_limit\n")
	assert.Less(t, strings.Index(out, "[Warnings]"), strings.Index(out, "[Effective Config]"))
}

func TestConfigShowCommand_LoadError(t *testing.T) {
	container := newConfigTestContainer(&testutil.MockConfigLoader{Err: assert.AnError}, &testutil.MockConfigManager{})

	_, err := runCommand(t, newConfigCommand(container), "show")

	assert.ErrorIs(t, err, assert.AnError)
}

func TestConfigTemplateCommand_OutputsTemplate(t *testing.T) {
	out, err := runCommand(t, newConfigTemplateCommand())

	require.NoError(t, err)
	assert.Equal(t, domain.RenderConfigTemplate(domain.NewDefaultConfig()), out)
	assert.Contains(t, out, "[board]")
	assert.Contains(t, out, "[ai]")
}

func TestConfigInitCommand_CreatesRepoConfig(t *testing.T) {
	manager := &testutil.MockConfigManager{
		ProjectInfo: domain.ConfigInfo{Path: "/work/.kanban/config.toml"},
	}
	container := newConfigTestContainer(&testutil.MockConfigLoader{}, manager)

	out, err := runCommand(t, newConfigCommand(container), "init")

	require.NoError(t, err)
	assert.Contains(t, out, "Created config file: /work/.kanban/config.toml")
	assert.True(t, manager.InitProjectCalled)
	assert.False(t, manager.InitGlobalCalled)
}

func TestConfigInitCommand_WithGlobalFlag(t *testing.T) {
	manager := &testutil.MockConfigManager{
		GlobalInfo: domain.ConfigInfo{Path: "/home/user/.config/kanban/config.toml"},
	}
	container := newConfigTestContainer(&testutil.MockConfigLoader{}, manager)

	out, err := runCommand(t, newConfigCommand(container), "init", "--global")

	require.NoError(t, err)
	assert.Contains(t, out, "Created config file: /home/user/.config/kanban/config.toml")
	assert.True(t, manager.InitGlobalCalled)
	assert.False(t, manager.InitProjectCalled)
}

func TestConfigInitCommand_ErrorIfFileExists(t *testing.T) {
	manager := &testutil.MockConfigManager{InitProjectErr: domain.ErrConfigExists}
	container := newConfigTestContainer(&testutil.MockConfigLoader{}, manager)

	_, err := runCommand(t, newConfigCommand(container), "init")

	assert.ErrorIs(t, err, domain.ErrConfigExists)
}
