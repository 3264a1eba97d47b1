// ABOUTME: Configuration loader for the evmarket CLI
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIURL is the local development backend address.
const DefaultAPIURL = "http://localhost:5124"

type Config struct {
	// Backend
	APIURL         string
	RequestTimeout time.Duration // per-request HTTP timeout

	// Local state
	ConfigDir string // where the credential file lives

	// Debug
	DebugLogFile string // TUI debug log destination, empty = disabled
}

func Load() (*Config, error) {
	cfg := &Config{
		APIURL:         ensureScheme(getEnv("EVMARKET_API_URL", DefaultAPIURL)),
		RequestTimeout: time.Duration(getEnvInt("EVMARKET_REQUEST_TIMEOUT", 30)) * time.Second,
		ConfigDir:      getEnv("EVMARKET_CONFIG_DIR", DefaultConfigDir()),
		DebugLogFile:   os.Getenv("EVMARKET_DEBUG_LOG"),
	}

	if cfg.APIURL == "" {
		return nil, fmt.Errorf("EVMARKET_API_URL is required")
	}
	if cfg.RequestTimeout < time.Second || cfg.RequestTimeout > 5*time.Minute {
		return nil, fmt.Errorf("EVMARKET_REQUEST_TIMEOUT must be between 1 and 300 seconds")
	}

	return cfg, nil
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "evmarket")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "evmarket")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// ensureScheme adds http:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "http://" + url
	}
	return url
}
