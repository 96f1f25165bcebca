package config_test

import (
	"encoding/json"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/CodexForgeBR/ghost-agent/internal/config"
	"github.com/CodexForgeBR/ghost-agent/internal/schedule"
)

func sampleConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Schedule.Blocks = []schedule.Block{{Start: 22, End: 3, Probability: 0.5, WrapsMidnight: true, Description: "night"}}
	cfg.Repos = []string{"https://github.com/owner/a.git"}
	cfg.Extensions = []string{".go"}
	cfg.Comments = []string{"note"}
	cfg.CommitMessages = []string{"chore: note"}
	return cfg
}

func TestRender_JSON(t *testing.T) {
	out, err := config.Render(sampleConfig(), "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Asia/Kolkata", decoded["timezone"])
	assert.NotContains(t, string(out), "ConfigFile")
	assert.Contains(t, string(out), `"wraps_midnight": true`)
}

func TestRender_YAML(t *testing.T) {
	out, err := config.Render(sampleConfig(), "yaml")
	require.NoError(t, err)

	var decoded struct {
		Schedule struct {
			Blocks []map[string]any `yaml:"blocks"`
		} `yaml:"schedule"`
		HistoryFile string `yaml:"history_file"`
	}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "history.json", decoded.HistoryFile)
	require.Len(t, decoded.Schedule.Blocks, 1)
	assert.Equal(t, "night", decoded.Schedule.Blocks[0]["description"])
}

func TestRender_TOML(t *testing.T) {
	out, err := config.Render(sampleConfig(), "toml")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, toml.Unmarshal(out, &decoded))
	assert.Equal(t, "GH_PAT", decoded["token_env"])
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := config.Render(sampleConfig(), "xml")
	assert.ErrorContains(t, err, "unknown format")
}
