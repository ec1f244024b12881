package config

import (
	"path/filepath"
	"testing"

	"github.com/kanban-board/kanban/internal/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ConfigInfo(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, testKanbanDir, "[log]\nlevel = \"debug\"\n")
	m := NewManagerWithFs(fs, testKanbanDir, testGlobalDir)

	project := m.ProjectConfigInfo()
	assert.True(t, project.Exists)
	assert.Equal(t, filepath.Join(testKanbanDir, domain.ConfigFileName), project.Path)
	assert.Equal(t, "[log]\nlevel = \"debug\"\n", project.Content)

	global := m.GlobalConfigInfo()
	assert.False(t, global.Exists)
	assert.Equal(t, filepath.Join(testGlobalDir, domain.ConfigFileName), global.Path)
}

func TestManager_GlobalConfigInfo_NoDir(t *testing.T) {
	m := NewManagerWithFs(afero.NewMemMapFs(), testKanbanDir, "")

	assert.Equal(t, domain.ConfigInfo{}, m.GlobalConfigInfo())
	assert.Error(t, m.InitGlobalConfig(domain.NewDefaultConfig()))
}

func TestManager_InitProjectConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := NewManagerWithFs(fs, testKanbanDir, testGlobalDir)

	require.NoError(t, m.InitProjectConfig(domain.NewDefaultConfig()))

	info := m.ProjectConfigInfo()
	require.True(t, info.Exists)
	assert.Contains(t, info.Content, "[board]")
	assert.Contains(t, info.Content, `completion_column = "done"`)
	assert.Contains(t, info.Content, "activity_limit = 20")

	err := m.InitProjectConfig(domain.NewDefaultConfig())
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestManager_InitGlobalConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := NewManagerWithFs(fs, testKanbanDir, testGlobalDir)

	require.NoError(t, m.InitGlobalConfig(domain.NewDefaultConfig()))

	exists, err := afero.Exists(fs, filepath.Join(testGlobalDir, domain.ConfigFileName))
	require.NoError(t, err)
	assert.True(t, exists)
	assert.False(t, m.ProjectConfigInfo().Exists)
}
