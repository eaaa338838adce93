package domain

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, DefaultTimeout, cfg.API.Timeout)
	assert.Equal(t, DefaultRetries, cfg.API.Retries)
	assert.Equal(t, 120, cfg.Goals.DefaultMinutes)
	assert.Equal(t, 30, cfg.Goals.BreakMinutes)
	assert.Equal(t, "Break", cfg.Categories.BreakName)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestRenderConfigTemplate_IsValidTOML(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.API.BaseURL = "https://pm.example.com/api"

	out := RenderConfigTemplate(cfg)

	var raw map[string]any
	require.NoError(t, toml.Unmarshal([]byte(out), &raw))
	api, ok := raw["api"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://pm.example.com/api", api["base_url"])
	assert.Equal(t, "10s", api["timeout"])
	assert.Contains(t, out, `break_name = "Break"`)
}
