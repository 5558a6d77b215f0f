package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/GustavoCaso/storefront/internal/logger"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "storefront.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	return path
}

func TestParse(t *testing.T) {
	path := writeConfig(t, `
[server]
port = "9090"
live_reload = true

[db]
source = "test.db"
journal_mode = "WAL"

[backend]
url = "http://backend.local/api"
timeout = "2s"

[currency]
default = "eur"
cache_ttl = "1m"

[logger]
level = "debug"
format = "json"
output = "discard"
`)

	conf, err := Parse(path)
	if err != nil {
		t.Fatalf("Failed to parse config: %v", err)
	}

	if conf.Server.Port != "9090" {
		t.Errorf("Expected port '9090', got '%s'", conf.Server.Port)
	}

	if !conf.Server.LiveReload {
		t.Error("Expected live reload to be enabled")
	}

	if conf.DB.Source != "test.db" {
		t.Errorf("Expected DB path 'test.db', got '%s'", conf.DB.Source)
	}

	if conf.Backend.Timeout != 2*time.Second {
		t.Errorf("Expected backend timeout 2s, got %s", conf.Backend.Timeout)
	}

	if conf.Currency.Default != "EUR" {
		t.Errorf("Expected default currency 'EUR', got '%s'", conf.Currency.Default)
	}

	if conf.Currency.ServiceURL != "http://backend.local/api" {
		t.Errorf("Expected currency service to default to backend URL, got '%s'", conf.Currency.ServiceURL)
	}

	if conf.Currency.Timeout != 2*time.Second {
		t.Errorf("Expected currency timeout to default to backend timeout, got %s", conf.Currency.Timeout)
	}

	if conf.Currency.CacheTTL != time.Minute {
		t.Errorf("Expected cache TTL 1m, got %s", conf.Currency.CacheTTL)
	}

	if conf.Logger.Level != logger.LevelDebug {
		t.Errorf("Expected logger level 'debug', got '%s'", conf.Logger.Level)
	}

	if conf.Logger.Format != logger.FormatJSON {
		t.Errorf("Expected logger format 'json', got '%s'", conf.Logger.Format)
	}
}

func TestParseENV(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STOREFRONT_DB", "env.db")
	t.Setenv("STOREFRONT_BACKEND_URL", "http://env.local")
	t.Setenv("STOREFRONT_CURRENCY", "gbp")
	t.Setenv("STOREFRONT_CURRENCY_CACHE_SIZE", "-1")
	t.Setenv("STOREFRONT_LOG_LEVEL", "warn")
	t.Setenv("STOREFRONT_LOG_OUTPUT", "discard")

	conf, err := Parse("")
	if err != nil {
		t.Fatalf("Failed to parse config: %v", err)
	}

	if conf.DB.Source != "env.db" {
		t.Errorf("Expected DB path 'env.db', got '%s'", conf.DB.Source)
	}

	if conf.Backend.URL != "http://env.local" {
		t.Errorf("Expected backend URL 'http://env.local', got '%s'", conf.Backend.URL)
	}

	if conf.Currency.Default != "GBP" {
		t.Errorf("Expected currency 'GBP', got '%s'", conf.Currency.Default)
	}

	if conf.Currency.CacheSize != -1 {
		t.Errorf("Expected cache size -1, got %d", conf.Currency.CacheSize)
	}

	if conf.Logger.Level != logger.LevelWarn {
		t.Errorf("Expected logger level 'warn', got '%s'", conf.Logger.Level)
	}
}

func TestParseDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	conf, err := Parse("")
	if err != nil {
		t.Fatalf("Expected no error when the default config file is missing, got %v", err)
	}

	if conf.Server.Port != defaultPort {
		t.Errorf("Expected default port %s, got %s", defaultPort, conf.Server.Port)
	}

	if conf.DB.Source != defaultDBSource {
		t.Errorf("Expected default DB %s, got %s", defaultDBSource, conf.DB.Source)
	}

	if conf.Backend.URL != "" {
		t.Errorf("Expected no backend URL, got %s", conf.Backend.URL)
	}

	if conf.Currency.Default != defaultCurrency {
		t.Errorf("Expected default currency %s, got %s", defaultCurrency, conf.Currency.Default)
	}

	if conf.Logger.Output != defaultLogOutput {
		t.Errorf("Expected default log output %s, got %s", defaultLogOutput, conf.Logger.Output)
	}
}

func TestParseErrors(t *testing.T) {
	t.Run("explicit missing file", func(t *testing.T) {
		_, err := Parse(filepath.Join(t.TempDir(), "missing.toml"))
		if err == nil {
			t.Error("Expected error for missing explicit config file")
		}
	})

	t.Run("invalid currency", func(t *testing.T) {
		path := writeConfig(t, "[currency]\ndefault = \"EURO\"\n")
		_, err := Parse(path)
		if err == nil {
			t.Error("Expected error for invalid currency code")
		}
	})

	t.Run("invalid env duration", func(t *testing.T) {
		t.Setenv("STOREFRONT_BACKEND_TIMEOUT", "soon")
		path := writeConfig(t, "")
		_, err := Parse(path)
		if err == nil {
			t.Error("Expected error for invalid backend timeout")
		}
	})
}
