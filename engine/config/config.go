package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings read from the environment
type Config struct {
	Environment string `env:"RTS_ENV" envDefault:"development"`
	LogLevelRaw string `env:"RTS_LOG_LEVEL" envDefault:"info"`

	DataDir   string `env:"RTS_DATA_DIR" envDefault:"data"`
	SaveDir   string `env:"RTS_SAVE_DIR" envDefault:"saves"`
	AssetsDir string `env:"RTS_ASSETS_DIR"` // empty = auto-detect

	ScreenWidth  int     `env:"RTS_SCREEN_WIDTH" envDefault:"1280"`
	ScreenHeight int     `env:"RTS_SCREEN_HEIGHT" envDefault:"720"`
	TickRate     float64 `env:"RTS_TICK_RATE" envDefault:"20"`
	Fullscreen   bool    `env:"RTS_FULLSCREEN" envDefault:"false"`
	SkipIntro    bool    `env:"RTS_SKIP_INTRO" envDefault:"false"`

	LogLevel slog.Level
}

// Load parses the environment into a Config and validates it
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = ParseLogLevel(cfg.LogLevelRaw)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the game cannot start with
func (c *Config) Validate() error {
	var errs []error
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", c.ScreenWidth, c.ScreenHeight))
	}
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick rate must be positive, got %v", c.TickRate))
	}
	if strings.TrimSpace(c.SaveDir) == "" {
		errs = append(errs, errors.New("save dir must not be empty"))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether the game runs with production logging
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
