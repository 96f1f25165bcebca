package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/ghost-agent/internal/config"
)

func TestNewDefaultConfigValues(t *testing.T) {
	cfg := config.NewDefaultConfig()
	require.NotNil(t, cfg)

	// File paths.
	assert.Equal(t, "history.json", cfg.HistoryFile)
	assert.Equal(t, "ghost_log.txt", cfg.LogFile)
	assert.Empty(t, cfg.WorkDir)

	assert.Equal(t, "Asia/Kolkata", cfg.Timezone)
	assert.Equal(t, "GH_PAT", cfg.TokenEnv)

	// Session behaviour.
	assert.Equal(t, 0.3, cfg.UndoProbability)
	assert.Equal(t, 2, cfg.PauseMinSeconds)
	assert.Equal(t, 8, cfg.PauseMaxSeconds)
	assert.Zero(t, cfg.MaxAttempts)
	assert.Equal(t, 2, cfg.CloneRetries)

	// Git identity.
	assert.Equal(t, "Ghost Agent", cfg.GitUserName)
	assert.Equal(t, "agent@ghost.local", cfg.GitUserEmail)
	assert.Equal(t, "refactor: cleanup", cfg.CleanupMessage)

	// Activity definition has no defaults.
	assert.Empty(t, cfg.Schedule.Blocks)
	assert.Empty(t, cfg.Repos)
	assert.Empty(t, cfg.Comments)
}

func TestAttemptBudget(t *testing.T) {
	cfg := config.NewDefaultConfig()
	assert.Equal(t, 15, cfg.AttemptBudget(5))
	assert.Equal(t, 0, cfg.AttemptBudget(0))

	cfg.MaxAttempts = 4
	assert.Equal(t, 4, cfg.AttemptBudget(5))
}

func TestRequiredKeysUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, k := range config.RequiredKeys {
		assert.False(t, seen[k], "duplicate required key: %s", k)
		seen[k] = true
	}
	assert.Len(t, config.RequiredKeys, 6)
}
