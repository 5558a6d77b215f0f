package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/GustavoCaso/storefront/internal/fixtures"
	"github.com/GustavoCaso/storefront/internal/listing"
	"github.com/GustavoCaso/storefront/internal/logger"
)

func createMigrationsTable(ctx context.Context, db *sql.DB) error {
	statement, err := db.PrepareContext(ctx, `
			CREATE TABLE IF NOT EXISTS schema_migrations (
					version INTEGER PRIMARY KEY,
					applied_at INTEGER NOT NULL
			)
	`)
	if err != nil {
		return err
	}
	defer statement.Close()
	_, err = statement.ExecContext(ctx)
	return err
}

func DropTables(db *sql.DB) error {
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for dropping tables: %w", err)
	}

	for _, table := range []string{"listings", "schema_migrations"} {
		if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			rErr := tx.Rollback()
			if rErr != nil {
				return rErr
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deletion: %w", err)
	}

	return nil
}

func (s *sqliteStorage) ApplyMigrations(ctx context.Context, logger *logger.Logger) error {
	// Create migrations table if it doesn't exist
	if err := createMigrationsTable(ctx, s.db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	// Get current schema version
	currentVersion := 0
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Define migrations
	migrations := []struct {
		name string
		up   func(*sql.Tx) error
	}{
		{
			name: "Create listings table",
			up: func(tx *sql.Tx) error {
				_, err := tx.ExecContext(ctx, `
					CREATE TABLE IF NOT EXISTS listings
					(
					id INTEGER PRIMARY KEY,
					listing_id TEXT NOT NULL,
					kind TEXT NOT NULL,
					slug TEXT NOT NULL,
					name TEXT NOT NULL,
					image_url TEXT NOT NULL,
					price TEXT NOT NULL,
					secondary_price TEXT,
					currency TEXT NOT NULL,
					category TEXT NOT NULL,
					seller TEXT NOT NULL,
					status TEXT NOT NULL,
					created_at INTEGER,
					end_time INTEGER,
					bid_count INTEGER,
					stock_quantity INTEGER,
					is_featured INTEGER NOT NULL DEFAULT 0,
					rating REAL,
					UNIQUE(kind, slug)
					) STRICT;
				`)
				if err != nil {
					return err
				}

				_, err = tx.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_listings_kind ON listings(kind)")
				return err
			},
		},
		{
			name: "Seed fixture listings",
			up: func(tx *sql.Tx) error {
				records, err := fixtures.LoadAll(time.Now())
				if err != nil {
					return fmt.Errorf("failed to load fixtures: %w", err)
				}

				inserted, err := insertListings(ctx, tx, records)
				if err != nil {
					return fmt.Errorf("failed to seed listings: %w", err)
				}

				logger.Info("Seeded fixture listings", "count", inserted, "kinds", len(listing.Kinds))
				return nil
			},
		},
	}

	// Apply pending migrations
	for i, migration := range migrations {
		// Check if migration is already applied
		migrationVersion := i + 1
		if migrationVersion <= currentVersion {
			continue
		}

		logger.Info("Applying migration",
			"version", migrationVersion,
			"name", migration.name)

		if err := s.applyMigration(ctx, migrationVersion, migration.up); err != nil {
			return err
		}

		logger.Info("Migration applied successfully", "version", migrationVersion)
	}

	return nil
}

func (s *sqliteStorage) applyMigration(ctx context.Context, version int, up func(*sql.Tx) error) error {
	// Begin transaction for this migration
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for migration %d: %w", version, err)
	}

	// Apply migration
	if err = up(tx); err != nil {
		rErr := tx.Rollback()
		if rErr != nil {
			return rErr
		}
		return fmt.Errorf("migration %d failed: %w", version, err)
	}

	// Record migration
	_, err = tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
		version, time.Now().Unix(),
	)
	if err != nil {
		rErr := tx.Rollback()
		if rErr != nil {
			return rErr
		}
		return fmt.Errorf("failed to record migration %d: %w", version, err)
	}

	// Commit transaction
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", version, err)
	}

	return nil
}
