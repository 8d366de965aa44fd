package config

import (
	"fmt"
	"strings"

	appErrors "dailyreminder/internal/pkg/errors"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`  // debug|info|warn|error
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"` // healthz and the LINE webhook

	DBDriver   string `envconfig:"DB_DRIVER" default:"sqlite"` // sqlite|postgres
	DBDSN      string `envconfig:"DB_DSN" default:"schedulers.db"`
	DBLogLevel string `envconfig:"DB_LOG_LEVEL" default:"warn"` // silent|error|warn|info

	LineChannelSecret string `envconfig:"LINE_CHANNEL_SECRET"`
	LineChannelToken  string `envconfig:"LINE_CHANNEL_ACCESS_TOKEN"`

	TelegramToken string `envconfig:"TELEGRAM_TOKEN"`
	TelegramDebug bool   `envconfig:"TELEGRAM_DEBUG" default:"false"`

	SendRatePerSec float64 `envconfig:"SEND_RATE_PER_SEC" default:"25"` // 0 disables throttling
	SendBurst      int     `envconfig:"SEND_BURST" default:"5"`
}

// Load reads environment variables into Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", appErrors.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LineEnabled reports whether both LINE credentials are present.
func (c Config) LineEnabled() bool {
	return c.LineChannelSecret != "" && c.LineChannelToken != ""
}

// TelegramEnabled reports whether a Telegram token is present.
func (c Config) TelegramEnabled() bool {
	return c.TelegramToken != ""
}

// Validate checks cross-field constraints envconfig cannot express.
func (c Config) Validate() error {
	if !c.LineEnabled() && !c.TelegramEnabled() {
		return fmt.Errorf("%w: set TELEGRAM_TOKEN or both LINE_CHANNEL_SECRET and LINE_CHANNEL_ACCESS_TOKEN", appErrors.ErrInvalidConfig)
	}
	if (c.LineChannelSecret == "") != (c.LineChannelToken == "") {
		return fmt.Errorf("%w: LINE_CHANNEL_SECRET and LINE_CHANNEL_ACCESS_TOKEN must be set together", appErrors.ErrInvalidConfig)
	}
	switch strings.ToLower(c.DBDriver) {
	case "sqlite", "sqlite3", "postgres", "postgresql", "pg":
	default:
		return fmt.Errorf("%w: unknown DB_DRIVER %q", appErrors.ErrInvalidConfig, c.DBDriver)
	}
	if strings.TrimSpace(c.DBDSN) == "" {
		return fmt.Errorf("%w: DB_DSN must not be empty", appErrors.ErrInvalidConfig)
	}
	if c.SendRatePerSec < 0 || c.SendBurst < 0 {
		return fmt.Errorf("%w: SEND_RATE_PER_SEC and SEND_BURST must not be negative", appErrors.ErrInvalidConfig)
	}
	return nil
}
