package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the explicit startup configuration. Every option has a working
// default so the service starts without any environment set, but production
// deployments are expected to provide their own values.
type Config struct {
	ListenAddr    string
	DBPath        string
	DBPoolSize    int
	DBBusyTimeout time.Duration
	PublicURL     string
}

// Load reads configuration from the environment. Values are validated
// separately so a caller can report all startup problems at once.
func Load() *Config {
	cfg := &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		DBPath:        getEnv("DB_PATH", "progress.db"),
		DBPoolSize:    getEnvInt("DB_POOL_SIZE", 3),
		DBBusyTimeout: time.Duration(getEnvInt("DB_BUSY_TIMEOUT_MS", 5000)) * time.Millisecond,
		PublicURL:     strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:8080"), "/"),
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address is empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path is empty")
	}
	if c.DBPoolSize < 1 {
		return fmt.Errorf("pool size must be at least 1, got %d", c.DBPoolSize)
	}
	if c.DBBusyTimeout <= 0 {
		return fmt.Errorf("busy timeout must be positive, got %s", c.DBBusyTimeout)
	}
	if !strings.HasPrefix(c.PublicURL, "http://") && !strings.HasPrefix(c.PublicURL, "https://") {
		return fmt.Errorf("public URL must start with http:// or https://, got %q", c.PublicURL)
	}
	return nil
}

// DSN builds the sqlite connection string with WAL and the busy timeout.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d", c.DBPath, c.DBBusyTimeout/time.Millisecond)
}

// ShareURL is the public locator for a bar id.
func (c *Config) ShareURL(id string) string {
	return c.PublicURL + "/" + id
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
