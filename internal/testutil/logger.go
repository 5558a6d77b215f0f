package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GustavoCaso/storefront/internal/logger"
)

func TestLogger(t *testing.T) *logger.Logger {
	t.Helper()

	// creates a test logger that doesn't output anything.
	testLogger := logger.New(logger.Config{
		Level:  logger.LevelInfo,
		Format: logger.FormatText,
		Output: "discard",
	})

	return testLogger
}

// RecordingLogger writes to a temporary file. The returned function reads
// everything logged so far.
func RecordingLogger(t *testing.T) (*logger.Logger, func() string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.log")
	testLogger := logger.New(logger.Config{
		Level:  logger.LevelDebug,
		Format: logger.FormatText,
		Output: path,
	})

	return testLogger, func() string {
		t.Helper()

		content, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			t.Fatalf("Failed to read test log: %v", err)
		}
		return string(content)
	}
}
