// Package db opens the SQLite database behind the slot store and keeps its
// schema current.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

var syncModes = []string{"OFF", "NORMAL", "FULL", "EXTRA"}

// Options selects the database file and the pragmas applied to it.
type Options struct {
	Path string
	WAL  bool
	// Sync is the synchronous pragma, case-insensitive. Empty keeps the
	// driver default.
	Sync string
}

func (o Options) dsn() (string, error) {
	if o.Path == "" {
		return "", fmt.Errorf("database path is required")
	}

	params := url.Values{}
	if o.WAL && o.Path != MemoryPath {
		params.Set("_journal_mode", "WAL")
	}
	if o.Sync != "" {
		mode := strings.ToUpper(o.Sync)
		if !validSync(mode) {
			return "", fmt.Errorf("invalid sync mode %q (want one of %s)", o.Sync, strings.Join(syncModes, ", "))
		}
		params.Set("_synchronous", mode)
	}
	if len(params) == 0 {
		return o.Path, nil
	}
	return o.Path + "?" + params.Encode(), nil
}

func validSync(mode string) bool {
	for _, m := range syncModes {
		if m == mode {
			return true
		}
	}
	return false
}

// Open connects to the database described by o and verifies the connection.
func Open(ctx context.Context, o Options) (*sql.DB, error) {
	dsn, err := o.dsn()
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", o.Path, err)
	}
	// Each pooled connection to :memory: would see its own empty database.
	if o.Path == MemoryPath {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database %q: %w", o.Path, err)
	}
	return conn, nil
}

// Checkpoint folds the WAL back into the main database file and truncates it.
func Checkpoint(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
		return fmt.Errorf("wal checkpoint: %w", err)
	}
	return nil
}
