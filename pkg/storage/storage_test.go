package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/unowned-ai/solace/pkg/db"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	testDB, err := db.Open(ctx, db.Options{Path: filepath.Join(t.TempDir(), "solace.db"), WAL: true, Sync: "NORMAL"})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := db.Migrate(ctx, testDB, nil); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}
	t.Cleanup(func() { testDB.Close() })
	return testDB
}

func TestStores(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"zero":   &MemoryStore{},
		"sqlite": NewSQLiteStore(setupTestDB(t)),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, ok, err := store.Get(ctx, KeyJournalEntries); err != nil || ok {
				t.Fatalf("Get on empty store = ok %t, err %v; want ok false, nil", ok, err)
			}

			if err := store.Set(ctx, KeyJournalEntries, "[]"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := store.Set(ctx, KeyJournalEntries, `[{"id":"1"}]`); err != nil {
				t.Fatalf("overwriting Set failed: %v", err)
			}

			got, ok, err := store.Get(ctx, KeyJournalEntries)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if !ok {
				t.Fatal("Get reported a written slot as missing")
			}
			if got != `[{"id":"1"}]` {
				t.Errorf("Get = %q, want the last written value", got)
			}

			if _, ok, _ := store.Get(ctx, KeyCurrentMood); ok {
				t.Error("unrelated key should still be missing")
			}
		})
	}
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solace.db")
	ctx := context.Background()

	first, err := db.Open(ctx, db.Options{Path: path, Sync: "FULL"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Migrate(ctx, first, nil); err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	if err := NewSQLiteStore(first).Set(ctx, KeyCurrentMood, "calm"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	first.Close()

	second, err := db.Open(ctx, db.Options{Path: path, Sync: "FULL"})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	got, ok, err := NewSQLiteStore(second).Get(ctx, KeyCurrentMood)
	if err != nil || !ok || got != "calm" {
		t.Errorf("Get after reopen = %q, %t, %v; want \"calm\", true, nil", got, ok, err)
	}
}
