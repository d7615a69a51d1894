//go:build prod

package config

import (
	"log"
	"os"
	"path/filepath"
)

// DefaultDataDir returns the data directory for production mode. App
// state lives in the user's config directory.
func DefaultDataDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Printf("Warning: Failed to get user config dir: %v. Using fallback.", err)
		return "diotrix-data"
	}

	appDir := filepath.Join(configDir, "diotrix")

	if err := os.MkdirAll(appDir, 0755); err != nil {
		log.Printf("Warning: Failed to create app config dir: %v. Using fallback.", err)
		return "diotrix-data"
	}

	return appDir
}

func IsDevelopment() bool {
	return false
}
