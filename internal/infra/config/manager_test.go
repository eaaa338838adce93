package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GlobalConfigInfo_Missing(t *testing.T) {
	dir := t.TempDir()
	m := NewManagerWithGlobalDir(dir)

	info := m.GlobalConfigInfo()

	assert.False(t, info.Exists)
	assert.Equal(t, filepath.Join(dir, domain.ConfigFileName), info.Path)
}

func TestManager_InitGlobalConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "worklog")
	m := NewManagerWithGlobalDir(dir)

	path, err := m.InitGlobalConfig(domain.NewDefaultConfig())
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[api]")

	info := m.GlobalConfigInfo()
	assert.True(t, info.Exists)
	assert.Equal(t, string(content), info.Content)

	_, err = m.InitGlobalConfig(domain.NewDefaultConfig())
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestManager_NoGlobalDir(t *testing.T) {
	m := NewManagerWithGlobalDir("")

	assert.False(t, m.GlobalConfigInfo().Exists)
	_, err := m.InitGlobalConfig(domain.NewDefaultConfig())
	assert.Error(t, err)
}
