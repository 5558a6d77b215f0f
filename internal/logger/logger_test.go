package logger

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   slog.Level
	}{
		{name: "debug level", config: Config{Level: LevelDebug}, want: slog.LevelDebug},
		{name: "info level", config: Config{Level: LevelInfo}, want: slog.LevelInfo},
		{name: "warn level", config: Config{Level: LevelWarn}, want: slog.LevelWarn},
		{name: "error level", config: Config{Level: LevelError}, want: slog.LevelError},
		{name: "unknown level defaults to info", config: Config{Level: "verbose"}, want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Output = "discard"
			logger := New(tt.config)
			if logger.Logger == nil {
				t.Fatal("Expected logger to be created")
			}

			if !logger.Enabled(t.Context(), tt.want) {
				t.Errorf("Expected level %s to be enabled", tt.want)
			}

			if tt.want > slog.LevelDebug && logger.Enabled(t.Context(), tt.want-4) {
				t.Errorf("Expected level below %s to be disabled", tt.want)
			}
		})
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	original := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = original

	output, _ := io.ReadAll(r)
	return string(output)
}

func TestJSONFormat(t *testing.T) {
	output := captureStdout(t, func() {
		logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: "stdout"})
		logger.Info("test message", "key", "value")
	})

	var logEntry map[string]interface{}
	if err := json.Unmarshal([]byte(output), &logEntry); err != nil {
		t.Fatalf("Expected valid JSON output, got error: %v", err)
	}

	if logEntry["msg"] != "test message" {
		t.Errorf("Expected msg to be 'test message', got %v", logEntry["msg"])
	}

	if logEntry["key"] != "value" {
		t.Errorf("Expected key to be 'value', got %v", logEntry["key"])
	}

	if logEntry["service"] != "storefront" {
		t.Errorf("Expected service to be 'storefront', got %v", logEntry["service"])
	}
}

func TestTextFormatWith(t *testing.T) {
	output := captureStdout(t, func() {
		logger := New(Config{Level: LevelInfo, Format: FormatText, Output: "stdout"})
		logger.With("request_id", "abc").Info("test message", "key", "value")
	})

	for _, want := range []string{"test message", "key=value", "request_id=abc"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got %s", want, output)
		}
	}
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.log")

	logger := New(Config{Level: LevelDebug, Output: path})
	logger.Debug("written to file")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	if !strings.Contains(string(content), "written to file") {
		t.Errorf("Expected log file to contain message, got %s", content)
	}
}
