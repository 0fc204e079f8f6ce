package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"BIZPANEL_DB_PATH", "BIZPANEL_USER", "BIZPANEL_SOUND", "BIZPANEL_LOG_LEVEL", "BIZPANEL_SEED_DEMO"} {
		t.Setenv(k, "")
	}
	t.Setenv("BIZPANEL_USER", "owner")
	t.Setenv("BIZPANEL_LOG_LEVEL", "info")

	cfg := Load()
	assert.Equal(t, "", cfg.DBPath)
	assert.Equal(t, "owner", cfg.User)
	// Unparsable booleans fall back to the default.
	assert.True(t, cfg.Sound)
	assert.True(t, cfg.SeedDemo)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BIZPANEL_DB_PATH", "/tmp/bizpanel.db")
	t.Setenv("BIZPANEL_USER", "maria")
	t.Setenv("BIZPANEL_SOUND", "false")
	t.Setenv("BIZPANEL_LOG_LEVEL", "debug")
	t.Setenv("BIZPANEL_SEED_DEMO", "0")

	cfg := Load()
	assert.Equal(t, "/tmp/bizpanel.db", cfg.DBPath)
	assert.Equal(t, "maria", cfg.User)
	assert.False(t, cfg.Sound)
	assert.False(t, cfg.SeedDemo)
	assert.Equal(t, "debug", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{User: " ", LogLevel: "loud"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user cannot be empty")
	assert.Contains(t, err.Error(), "invalid log level 'loud'")
}

func TestPaletteIsOpaque(t *testing.T) {
	require.NotEmpty(t, Palette)
	for _, c := range Palette {
		assert.Equal(t, uint8(0xff), c.A)
	}
}
