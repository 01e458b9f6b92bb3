package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"LISTEN_ADDR", "DB_PATH", "DB_POOL_SIZE", "DB_BUSY_TIMEOUT_MS", "PUBLIC_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.DBPath != "progress.db" {
		t.Errorf("DBPath = %q, want progress.db", cfg.DBPath)
	}
	if cfg.DBPoolSize != 3 {
		t.Errorf("DBPoolSize = %d, want 3", cfg.DBPoolSize)
	}
	if cfg.DBBusyTimeout != 5*time.Second {
		t.Errorf("DBBusyTimeout = %s, want 5s", cfg.DBBusyTimeout)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("DB_PATH", "/tmp/bars.db")
	t.Setenv("DB_POOL_SIZE", "10")
	t.Setenv("DB_BUSY_TIMEOUT_MS", "2500")
	t.Setenv("PUBLIC_URL", "https://bars.example.com/")

	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config invalid: %v", err)
	}
	if cfg.DBPoolSize != 10 {
		t.Errorf("DBPoolSize = %d, want 10", cfg.DBPoolSize)
	}
	if cfg.DBBusyTimeout != 2500*time.Millisecond {
		t.Errorf("DBBusyTimeout = %s, want 2.5s", cfg.DBBusyTimeout)
	}
	if cfg.PublicURL != "https://bars.example.com" {
		t.Errorf("PublicURL = %q, want trailing slash stripped", cfg.PublicURL)
	}
	if got := cfg.ShareURL("Abc123"); got != "https://bars.example.com/Abc123" {
		t.Errorf("ShareURL = %q", got)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty listen addr", func(c *Config) { c.ListenAddr = "" }},
		{"empty db path", func(c *Config) { c.DBPath = "" }},
		{"zero pool size", func(c *Config) { c.DBPoolSize = 0 }},
		{"negative busy timeout", func(c *Config) { c.DBBusyTimeout = -time.Second }},
		{"public url without scheme", func(c *Config) { c.PublicURL = "bars.example.com" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted a bad value")
			}
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBPath: "bars.db", DBBusyTimeout: 5 * time.Second}
	want := "bars.db?_journal_mode=WAL&_busy_timeout=5000"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}
