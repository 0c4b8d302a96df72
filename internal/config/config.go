package config

import (
	"fmt"
	"platodropbox/internal/core/domain/models"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	JournalSQLite = "sqlite"
	JournalJSON   = "json"
	JournalNone   = "none"
)

type Config struct {
	LogLevel string `env:"PLATO_DROPBOX_LOG_LEVEL" envDefault:"info"`

	SettingsPath string `env:"PLATO_DROPBOX_SETTINGS" envDefault:"Settings.toml"`
	ErrorLogPath string `env:"PLATO_DROPBOX_ERROR_LOG" envDefault:"plato-dropbox.log"`

	TokenURL       string        `env:"PLATO_DROPBOX_TOKEN_URL" envDefault:"https://api.dropbox.com/oauth2/token"`
	APIBaseURL     string        `env:"PLATO_DROPBOX_API_URL" envDefault:"https://api.dropboxapi.com/2"`
	ContentBaseURL string        `env:"PLATO_DROPBOX_CONTENT_URL" envDefault:"https://content.dropboxapi.com/2"`
	UserAgent      string        `env:"PLATO_DROPBOX_USER_AGENT" envDefault:"Plato-Dropbox/1.0.0"`
	HTTPTimeout    time.Duration `env:"PLATO_DROPBOX_HTTP_TIMEOUT" envDefault:"5m"`

	JournalType string `env:"PLATO_DROPBOX_JOURNAL" envDefault:"sqlite"`
	JournalPath string `env:"PLATO_DROPBOX_JOURNAL_PATH" envDefault:"plato-dropbox.db"`
}

func (c *Config) Validate() error {
	switch c.JournalType {
	case JournalSQLite, JournalJSON:
		if c.JournalPath == "" {
			return fmt.Errorf("PLATO_DROPBOX_JOURNAL_PATH is required when PLATO_DROPBOX_JOURNAL is %s", c.JournalType)
		}
	case JournalNone:
	default:
		return fmt.Errorf("PLATO_DROPBOX_JOURNAL must be one of sqlite, json, none (got %q)", c.JournalType)
	}

	for name, v := range map[string]string{
		"PLATO_DROPBOX_TOKEN_URL":   c.TokenURL,
		"PLATO_DROPBOX_API_URL":     c.APIBaseURL,
		"PLATO_DROPBOX_CONTENT_URL": c.ContentBaseURL,
	} {
		if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
			return fmt.Errorf("%s must be an http(s) URL", name)
		}
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("PLATO_DROPBOX_HTTP_TIMEOUT must be positive")
	}

	if c.SettingsPath == "" {
		return fmt.Errorf("PLATO_DROPBOX_SETTINGS cannot be empty")
	}

	return nil
}

// Load reads the runtime configuration from the environment, after loading a .env
// file from the working directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("%w: failed to parse environment: %w", models.ErrConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrConfig, err)
	}
	return cfg, nil
}
