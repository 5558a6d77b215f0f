package testutil

import (
	"path/filepath"
	"testing"

	"github.com/GustavoCaso/storefront/internal/config"
	"github.com/GustavoCaso/storefront/internal/storage"
	"github.com/GustavoCaso/storefront/internal/storage/sqlite"
)

// SetupTestStorage returns a migrated fixture store private to the test.
func SetupTestStorage(t *testing.T) storage.Storage {
	t.Helper()

	sqlFile := filepath.Join(t.TempDir(), "storefront.db")
	stor, err := sqlite.New(config.DBConfig{Source: sqlFile})
	if err != nil {
		t.Fatalf("Failed to open test storage: %v", err)
	}

	err = stor.ApplyMigrations(t.Context(), TestLogger(t))
	if err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	t.Cleanup(func() {
		if err := stor.Close(); err != nil {
			t.Errorf("Failed to close test storage: %v", err)
		}
	})

	return stor
}
