package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Scores backend kinds accepted by ARCADE_SCORES_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// AppConfig is process-wide configuration read from ARCADE_* variables.
// Command-line flags override it.
type AppConfig struct {
	DBPath          string        `env:"ARCADE_DB"                envDefault:"~/.arcade/scores.db"`
	ScoresBackend   string        `env:"ARCADE_SCORES_BACKEND"    envDefault:"sqlite"`
	ScoresDir       string        `env:"ARCADE_SCORES_FILE_DIR"   envDefault:"~/.arcade"`
	FPS             int           `env:"ARCADE_FPS"               envDefault:"60"`
	Difficulty      string        `env:"ARCADE_DIFFICULTY"`
	LogLevel        string        `env:"ARCADE_LOG_LEVEL"         envDefault:"info"`
	LogFile         string        `env:"ARCADE_LOG_FILE"`
	InsertCoinDelay time.Duration `env:"ARCADE_INSERT_COIN_DELAY" envDefault:"1500ms"`
	CountdownSecs   int           `env:"ARCADE_COUNTDOWN"         envDefault:"3"`
	SSHAddr         string        `env:"ARCADE_SSH_ADDR"          envDefault:":23234"`
	SSHHostKey      string        `env:"ARCADE_SSH_HOST_KEY"`
	SSHIdleTimeout  time.Duration `env:"ARCADE_SSH_IDLE_TIMEOUT"  envDefault:"30m"`
}

// LoadEnv parses AppConfig from the environment and validates it.
func LoadEnv() (AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that env parsing alone cannot.
func (c AppConfig) Validate() error {
	switch c.ScoresBackend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("config: unknown scores backend %q", c.ScoresBackend)
	}
	if c.FPS <= 0 || c.FPS > 240 {
		return fmt.Errorf("config: fps must be in 1..240, got %d", c.FPS)
	}
	if c.CountdownSecs < 0 {
		return fmt.Errorf("config: countdown must not be negative, got %d", c.CountdownSecs)
	}
	if _, ok := ParsePreset(c.Difficulty); !ok {
		return fmt.Errorf("config: unknown difficulty %q", c.Difficulty)
	}
	return nil
}
