package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ExitsFile    string `env:"ESCAPE_EXITS_FILE" envDefault:"exits.txt"`
	OutcomeFile  string `env:"ESCAPE_OUTCOME_FILE" envDefault:"Outcome.txt"`
	SaveDir      string `env:"ESCAPE_SAVE_DIR" envDefault:".saves"`
	HistoryDB    string `env:"ESCAPE_HISTORY_DB"`
	LogFile      string `env:"ESCAPE_LOG_FILE" envDefault:"escape.log"`
	Seed         uint64 `env:"ESCAPE_SEED" envDefault:"0"`
	Plain        bool   `env:"ESCAPE_PLAIN" envDefault:"false"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"ESCAPE_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

// ErrMissingGeminiKey is returned by RequireGemini when no key is set.
var ErrMissingGeminiKey = errors.New("GEMINI_API_KEY environment variable is not set")

// LoadConfig loads the configuration from environment variables. A .env file
// in the working directory is read first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ExitsFile == "" {
		return nil, fmt.Errorf("ESCAPE_EXITS_FILE must not be empty")
	}
	return &cfg, nil
}

// RequireGemini checks the settings the Gemini player needs.
func (c *Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return ErrMissingGeminiKey
	}
	return nil
}
