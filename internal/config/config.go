package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config is read from AMAP_* environment variables. Flags override it.
type Config struct {
	DBPath    string `env:"AMAP_DB_PATH"`
	SlotKey   string `env:"AMAP_SLOT_KEY"   envDefault:"jobSearchGameData"`
	LogLevel  string `env:"AMAP_LOG_LEVEL"  envDefault:"warn"`
	LogFormat string `env:"AMAP_LOG_FORMAT" envDefault:"text"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "text", "json":
		cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	default:
		return Config{}, fmt.Errorf("parse env: AMAP_LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}

// SetupLogging points the global zerolog logger at w. An unknown level
// falls back to warn.
func SetupLogging(cfg Config, w io.Writer) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat == "json" {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
}

// Silence drops all log output, for while a full-screen UI owns the terminal.
func Silence() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}
