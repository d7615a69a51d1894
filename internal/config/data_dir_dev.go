//go:build !prod

package config

// DefaultDataDir returns the data directory for development mode. In dev
// mode state lives in the working directory for easy inspection.
func DefaultDataDir() string {
	return "diotrix-data"
}

func IsDevelopment() bool {
	return true
}
