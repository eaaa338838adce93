package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func noEnv(string) string { return "" }

func TestLoader_Load_Defaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir("", t.TempDir(), noEnv)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_GlobalConfigOnly(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), `
[api]
base_url = "https://pm.example.com/api"
token = "secret"
timeout = "30s"
retries = 5
batch_reorder = true

[goals]
default_minutes = 90
break_minutes = 15

[categories]
break_name = "Pause"

[log]
level = "debug"

[state]
dir = "/tmp/worklog-state"
`)

	cfg, err := NewLoaderWithGlobalDir("", globalDir, noEnv).Load()
	require.NoError(t, err)

	assert.Equal(t, "https://pm.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "secret", cfg.API.Token)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 5, cfg.API.Retries)
	assert.True(t, cfg.API.BatchReorder)
	assert.Equal(t, 90, cfg.Goals.DefaultMinutes)
	assert.Equal(t, 15, cfg.Goals.BreakMinutes)
	assert.Equal(t, "Pause", cfg.Categories.BreakName)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/worklog-state", cfg.State.Dir)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_ExplicitOverridesGlobal(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), `
[api]
base_url = "https://global.example.com"
retries = 2

[log]
level = "warn"
`)
	explicit := filepath.Join(t.TempDir(), "team.toml")
	writeFile(t, explicit, `
[api]
base_url = "https://team.example.com"
timeout = 20
`)

	cfg, err := NewLoaderWithGlobalDir(explicit, globalDir, noEnv).Load()
	require.NoError(t, err)

	assert.Equal(t, "https://team.example.com", cfg.API.BaseURL)
	assert.Equal(t, 2, cfg.API.Retries)
	assert.Equal(t, 20*time.Second, cfg.API.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoader_Load_ExplicitMissing(t *testing.T) {
	loader := NewLoaderWithGlobalDir(filepath.Join(t.TempDir(), "nope.toml"), t.TempDir(), noEnv)

	_, err := loader.Load()

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_Load_TokenFromEnv(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), `
[api]
token = "from-file"
`)
	env := func(key string) string {
		if key == TokenEnv {
			return "from-env"
		}
		return ""
	}

	cfg, err := NewLoaderWithGlobalDir("", globalDir, env).Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.API.Token)
}

func TestLoader_Load_UnknownKeysWarn(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), `
[api]
base_url = "https://pm.example.com"
colour = "blue"

[theme]
name = "dark"
`)

	cfg, err := NewLoaderWithGlobalDir("", globalDir, noEnv).Load()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"unknown key in [api]: colour",
		"unknown section: theme",
	}, cfg.Warnings)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), "[api\nbase_url=")

	_, err := NewLoaderWithGlobalDir("", globalDir, noEnv).Load()

	assert.Error(t, err)
}

func TestLoader_Load_InvalidTimeout(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), `
[api]
timeout = "soon"
`)

	_, err := NewLoaderWithGlobalDir("", globalDir, noEnv).Load()

	assert.ErrorContains(t, err, "timeout")
}

func TestLoader_Load_RenderedTemplateRoundTrips(t *testing.T) {
	globalDir := t.TempDir()
	def := domain.NewDefaultConfig()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), domain.RenderConfigTemplate(def))

	cfg, err := NewLoaderWithGlobalDir("", globalDir, noEnv).Load()
	require.NoError(t, err)

	assert.Equal(t, def, cfg)
}

func TestLoader_Load_ExplicitZeroValuesOverride(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), `
[api]
retries = 5
batch_reorder = true

[goals]
default_minutes = 90
`)
	explicit := filepath.Join(t.TempDir(), "team.toml")
	writeFile(t, explicit, `
[api]
retries = 0
batch_reorder = false

[goals]
default_minutes = 0
`)

	cfg, err := NewLoaderWithGlobalDir(explicit, globalDir, noEnv).Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.API.Retries)
	assert.False(t, cfg.API.BatchReorder)
	assert.Equal(t, 0, cfg.Goals.DefaultMinutes)
	assert.Equal(t, domain.DefaultBreakGoalMinutes, cfg.Goals.BreakMinutes)
	assert.Equal(t, domain.DefaultTimeout, cfg.API.Timeout)
}

func TestLoader_Load_TimeoutInSeconds(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), "[api]\ntimeout = 45\n")

	cfg, err := NewLoaderWithGlobalDir("", globalDir, noEnv).Load()
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.API.Timeout)
}

func TestLoader_Load_MistypedValueDoesNotOverride(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), "[api]\nretries = 5\n")
	explicit := filepath.Join(t.TempDir(), "team.toml")
	writeFile(t, explicit, "[api]\nretries = \"many\"\n")

	cfg, err := NewLoaderWithGlobalDir(explicit, globalDir, noEnv).Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.API.Retries)
}
