package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds everything the app reads from the environment. Every
// value has a local-first default so a bare launch works offline.
type Config struct {
	DataDir      string `env:"DIOTRIX_DATA_DIR"`
	DatabasePath string `env:"DIOTRIX_DB_PATH"`
	GalleryDir   string `env:"DIOTRIX_GALLERY_DIR"`

	GoogleAIKey string `env:"GOOGLE_AI_API_KEY"`

	RevenueCatAPIKey    string `env:"REVENUECAT_API_KEY"`
	RevenueCatAppUserID string `env:"REVENUECAT_APP_USER_ID"`

	Debug bool `env:"DIOTRIX_DEBUG"`
}

// New loads .env (when present), then the environment, then fills
// defaults under the platform data directory.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(cfg.DataDir, "diotrix-gallery.db")
	}
	if cfg.GalleryDir == "" {
		cfg.GalleryDir = filepath.Join(cfg.DataDir, "gallery")
	}

	return cfg, nil
}
