package usecase

import (
	"context"
	"testing"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Execute(t *testing.T) {
	manager := &testutil.MockConfigManager{Info: domain.ConfigInfo{Path: "/cfg/config.toml"}}
	uc := NewInitConfig(manager)

	out, err := uc.Execute(context.Background(), InitConfigInput{})

	require.NoError(t, err)
	assert.Equal(t, "/cfg/config.toml", out.Path)
	assert.Contains(t, manager.Info.Content, "[api]")
}

func TestInitConfig_Execute_Exists(t *testing.T) {
	manager := &testutil.MockConfigManager{InitErr: domain.ErrConfigExists}
	uc := NewInitConfig(manager)

	_, err := uc.Execute(context.Background(), InitConfigInput{})

	assert.ErrorIs(t, err, domain.ErrConfigExists)
}
