package config

import (
	"bytes"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"AMAP_DB_PATH", "AMAP_SLOT_KEY", "AMAP_LOG_LEVEL", "AMAP_LOG_FORMAT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.DBPath)
	assert.Equal(t, "jobSearchGameData", cfg.SlotKey)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AMAP_DB_PATH", "/tmp/map.db")
	t.Setenv("AMAP_SLOT_KEY", "work")
	t.Setenv("AMAP_LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/map.db", cfg.DBPath)
	assert.Equal(t, "work", cfg.SlotKey)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	t.Setenv("AMAP_LOG_FORMAT", "xml")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestParseEnvError(t *testing.T) {
	var cfg struct {
		Port int `env:"AMAP_TEST_PORT"`
	}
	t.Setenv("AMAP_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestSetupLogging(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	SetupLogging(Config{LogLevel: "info", LogFormat: "json"}, &buf)
	log.Debug().Msg("hidden")
	log.Info().Str("quest", "q-1").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"quest":"q-1"`)

	SetupLogging(Config{LogLevel: "nonsense", LogFormat: "json"}, &buf)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	Silence()
	assert.Equal(t, zerolog.Disabled, zerolog.GlobalLevel())
}
