package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadUsesEnvOverrides(t *testing.T) {
	t.Setenv("SQ_DB_PATH", "/tmp/sq-test.db")
	t.Setenv("SQ_TIMEZONE", "Asia/Shanghai")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/sq-test.db", cfg.DBPath)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Shanghai", loc.String())
}

func TestLoadFallsBackToDefaultDBPath(t *testing.T) {
	t.Setenv("SQ_DB_PATH", "")
	t.Setenv("SQ_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.DBPath)
	assert.Contains(t, cfg.DBPath, ".soloquest.db")
}

func TestLocationRejectsUnknownZone(t *testing.T) {
	cfg := &Config{Timezone: "Not/AZone"}
	_, err := cfg.Location()
	require.Error(t, err)
}
