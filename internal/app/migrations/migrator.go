package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ShriShintre/Exam-Buddy/internal/db"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/logger"
)

// schemaVersion identifies the bundled schema; bump when adding statements.
const schemaVersion = "001"

// Migrator manages database migrations
type Migrator struct {
	store *db.Store
}

// NewMigrator creates a new migrator
func NewMigrator(store *db.Store) *Migrator {
	return &Migrator{store: store}
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`

	_, err := m.store.DB.ExecContext(ctx, createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM schema_migrations WHERE version = $1`
	err := m.store.DB.QueryRowContext(ctx, query, version).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

// Apply creates the application schema if it is not present yet.
func (m *Migrator) Apply(ctx context.Context) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	applied, err := m.isMigrationApplied(ctx, schemaVersion)
	if err != nil {
		return err
	}
	if applied {
		logger.Debug().Str("version", schemaVersion).Msg("Schema migration already applied, skipping")
		return nil
	}

	statements := sqliteSchema
	if m.store.Dialect() == db.DialectPostgres {
		statements = postgresSchema
	}

	err = m.store.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("schema statement failed: %w", err)
			}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)`,
			schemaVersion, time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info().Str("version", schemaVersion).Msg("Schema migration applied")
	return nil
}
