package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrSchemaTooNew is returned for a database written by a newer build.
var ErrSchemaTooNew = errors.New("database schema is newer than this build supports")

// Version reports the schema version recorded in conn. A fresh database,
// with no bookkeeping table yet, is at version 0.
func Version(ctx context.Context, conn *sql.DB) (int64, error) {
	var version int64
	err := conn.QueryRowContext(ctx, `SELECT version FROM schema_versions WHERE component = ?;`, component).Scan(&version)
	switch {
	case err == nil:
		return version, nil
	case errors.Is(err, sql.ErrNoRows):
		return 0, nil
	case strings.Contains(err.Error(), "no such table"):
		return 0, nil
	default:
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
}

// Migrate applies every pending migration, each in its own transaction.
func Migrate(ctx context.Context, conn *sql.DB, logger *slog.Logger) error {
	return migrate(ctx, conn, migrations, logger)
}

func migrate(ctx context.Context, conn *sql.DB, steps []string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	current, err := Version(ctx, conn)
	if err != nil {
		return err
	}
	target := int64(len(steps))
	if current > target {
		return fmt.Errorf("%w: database is at version %d, this build knows up to %d", ErrSchemaTooNew, current, target)
	}
	if current == target {
		logger.Debug("database schema up to date", "version", current)
		return nil
	}

	for v := current; v < target; v++ {
		if err := applyStep(ctx, conn, steps[v], v+1); err != nil {
			return err
		}
		logger.Info("database schema migrated", "version", v+1)
	}
	return nil
}

func applyStep(ctx context.Context, conn *sql.DB, stmt string, version int64) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", version, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("migration %d failed: %w", version, err)
	}
	_, err = tx.ExecContext(ctx, `
INSERT INTO schema_versions (component, version) VALUES (?, ?)
ON CONFLICT(component) DO UPDATE SET version = excluded.version, updated_at = unixepoch();`, component, version)
	if err != nil {
		return fmt.Errorf("failed to record schema version %d: %w", version, err)
	}
	return tx.Commit()
}
