package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds the settings shared by every command: where the store API
// lives, where session state is persisted, and how long requests may run.
type Config struct {
	// APIBaseURL is the base address of the store backend, without a
	// trailing slash. Relative image paths from list responses are joined
	// onto it to build preview URLs.
	APIBaseURL string

	// StateDir holds the persisted session (token and user record).
	StateDir string

	// RequestTimeout applies to JSON requests: login, list, update, delete.
	RequestTimeout time.Duration

	// UploadTimeout applies to multipart requests carrying image bytes.
	// Uploads from slow connections routinely take longer than plain
	// JSON calls, so this is deliberately more generous.
	UploadTimeout time.Duration
}

// Load reads configuration from the environment. A .env file, if present,
// has already been loaded by the root command.
func Load() (*Config, error) {
	stateDir := getEnv("SHOPCTL_STATE_DIR", "")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		stateDir = filepath.Join(home, ".shopctl")
	}

	cfg := &Config{
		APIBaseURL:     trimSlash(getEnv("SHOPCTL_API_BASE_URL", "http://localhost:4000")),
		StateDir:       stateDir,
		RequestTimeout: getEnvAsDuration("SHOPCTL_REQUEST_TIMEOUT", 15*time.Second),
		UploadTimeout:  getEnvAsDuration("SHOPCTL_UPLOAD_TIMEOUT", 30*time.Second),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
