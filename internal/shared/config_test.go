package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./cinex.db" {
			t.Errorf("expected database path ./cinex.db, got %s", config.Database.Path)
		}

		if config.API.BaseURL != "http://localhost:3000" {
			t.Errorf("expected API base URL http://localhost:3000, got %s", config.API.BaseURL)
		}

		if config.API.Timeout() != 15*time.Second {
			t.Errorf("expected 15s timeout, got %v", config.API.Timeout())
		}

		if config.Push.Provider != "redis" {
			t.Errorf("expected redis push provider, got %s", config.Push.Provider)
		}

		if config.Push.Webhook.Addr() != "127.0.0.1:8787" {
			t.Errorf("expected webhook addr 127.0.0.1:8787, got %s", config.Push.Webhook.Addr())
		}

		if err := config.Validate(); err != nil {
			t.Errorf("expected embedded config to validate, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("expected error when config file already exists")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("custom values", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			testConfig := `[api]
base_url = "https://api.example.com"
timeout_seconds = 3

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[push]
provider = "amqp"
project_id = "films"
sender_id = "42"

[push.amqp]
url = "amqp://localhost:5672/"
retries = 2
`
			if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			config, err := LoadConfig(configPath)
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}

			if config.Database.Path != "/custom/path.db" {
				t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
			}
			if config.API.Timeout() != 3*time.Second {
				t.Errorf("expected 3s timeout, got %v", config.API.Timeout())
			}
			if config.Push.Provider != "amqp" || config.Push.AMQP.Retries != 2 {
				t.Errorf("unexpected push config: %+v", config.Push)
			}
		})

		t.Run("rejects unknown provider", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			testConfig := `[api]
base_url = "https://api.example.com"

[database]
path = "x.db"

[push]
provider = "carrier-pigeon"
`
			if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			_, err := LoadConfig(configPath)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})

		t.Run("rejects missing base url", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(configPath, []byte("[database]\npath = \"x.db\"\n"), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			if _, err := LoadConfig(configPath); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})

		t.Run("missing file", func(t *testing.T) {
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
				t.Error("expected error for missing file")
			}
		})

		t.Run("malformed toml", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(configPath, []byte("[api\nbase_url="), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if _, err := LoadConfig(configPath); err == nil {
				t.Error("expected parse error")
			}
		})
	})
}
