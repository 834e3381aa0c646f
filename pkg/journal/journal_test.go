package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/unowned-ai/solace/pkg/mood"
	"github.com/unowned-ai/solace/pkg/storage"
	"gopkg.in/yaml.v3"
)

var baseTime = time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)

// fakeClock returns a controllable time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("entry-%d", n)
	}
}

func setupTestLog(t *testing.T, store storage.Store) (*Log, *fakeClock) {
	t.Helper()

	clock := &fakeClock{t: baseTime}
	log, err := Load(context.Background(), store, WithClock(clock.Now), WithIDGenerator(sequentialIDs()))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return log, clock
}

func TestLoad_SeedsDemoEntries(t *testing.T) {
	store := storage.NewMemoryStore()
	log, _ := setupTestLog(t, store)

	entries := log.Entries()
	if len(entries) != 3 {
		t.Fatalf("seeded %d entries, want 3", len(entries))
	}

	want := []struct {
		id   string
		mood mood.Mood
		date string
		days int64
	}{
		{"1", mood.Happy, "2025-03-13", 1},
		{"2", mood.Anxious, "2025-03-12", 2},
		{"3", mood.Calm, "2025-03-11", 3},
	}
	for i, w := range want {
		e := entries[i]
		if e.ID != w.id || e.Mood != w.mood || e.Date != w.date {
			t.Errorf("entry %d = {%s %s %s}, want {%s %s %s}", i, e.ID, e.Mood, e.Date, w.id, w.mood, w.date)
		}
		if wantTS := baseTime.UnixMilli() - w.days*dayMillis; e.Timestamp != wantTS {
			t.Errorf("entry %d timestamp = %d, want %d", i, e.Timestamp, wantTS)
		}
		if e.Note == "" {
			t.Errorf("entry %d has an empty note", i)
		}
	}

	raw, ok, _ := store.Get(context.Background(), storage.KeyJournalEntries)
	if !ok {
		t.Fatal("seeded entries were not persisted")
	}
	var persisted []map[string]any
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		t.Fatalf("persisted slot is not JSON: %v", err)
	}
	if len(persisted) != 3 {
		t.Fatalf("persisted %d entries, want 3", len(persisted))
	}
	for _, field := range []string{"id", "date", "mood", "note", "timestamp"} {
		if _, ok := persisted[0][field]; !ok {
			t.Errorf("persisted entry is missing field %q", field)
		}
	}
	if len(persisted[0]) != 5 {
		t.Errorf("persisted entry has %d fields, want exactly 5", len(persisted[0]))
	}
}

func TestLoad_RestoresAsIs(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	_ = store.Set(ctx, storage.KeyJournalEntries, `[{"id":"a","date":"2025-01-02","mood":"sad","note":"rain","timestamp":1735800000000}]`)

	log, _ := setupTestLog(t, store)
	entries := log.Entries()
	if len(entries) != 1 || entries[0].ID != "a" || entries[0].Mood != mood.Sad || entries[0].Note != "rain" {
		t.Errorf("restored entries = %+v", entries)
	}

	_ = store.Set(ctx, storage.KeyJournalEntries, `[]`)
	empty, _ := setupTestLog(t, store)
	if empty.Len() != 0 {
		t.Errorf("an empty persisted array should restore as empty, got %d entries", empty.Len())
	}
}

func TestLoad_MalformedSlotReseeds(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{{{"},
		{"wrong shape", `{"id":"1"}`},
		{"null", "null"},
		{"unknown mood", `[{"id":"1","date":"2025-01-01","mood":"elated","note":"x","timestamp":1}]`},
		{"missing id", `[{"date":"2025-01-01","mood":"calm","note":"x","timestamp":1}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			_ = store.Set(context.Background(), storage.KeyJournalEntries, tt.raw)

			log, _ := setupTestLog(t, store)
			if log.Len() != 3 {
				t.Errorf("got %d entries, want the 3 demo entries", log.Len())
			}
			raw, _, _ := store.Get(context.Background(), storage.KeyJournalEntries)
			if raw == tt.raw {
				t.Error("malformed slot should have been overwritten with the demo entries")
			}
		})
	}
}

func TestAddEntry(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	log, clock := setupTestLog(t, store)

	clock.Advance(time.Hour)
	entry, err := log.AddEntry(ctx, mood.Stressed, "Deadline tomorrow.")
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	if entry.ID != "entry-1" {
		t.Errorf("ID = %q, want entry-1", entry.ID)
	}
	if entry.Date != "2025-03-14" {
		t.Errorf("Date = %q, want 2025-03-14", entry.Date)
	}
	if entry.Timestamp != clock.Now().UnixMilli() {
		t.Errorf("Timestamp = %d, want %d", entry.Timestamp, clock.Now().UnixMilli())
	}
	if !entry.CreatedAt().Equal(clock.Now()) {
		t.Errorf("CreatedAt = %v, want %v", entry.CreatedAt(), clock.Now())
	}

	entries := log.Entries()
	if len(entries) != 4 || entries[0].ID != entry.ID {
		t.Fatalf("new entry should be first of 4, got %+v", entries)
	}

	reloaded, _ := setupTestLog(t, store)
	if reloaded.Len() != 4 || reloaded.Entries()[0].Note != "Deadline tomorrow." {
		t.Errorf("entry was not persisted: %+v", reloaded.Entries())
	}

	if _, err := log.AddEntry(ctx, mood.Mood("elated"), "x"); !errors.Is(err, mood.ErrUnknownMood) {
		t.Errorf("AddEntry with unknown mood error = %v, want ErrUnknownMood", err)
	}
}

func TestAddEntry_CapturesMoodAtWriteTime(t *testing.T) {
	ctx := context.Background()
	log, _ := setupTestLog(t, storage.NewMemoryStore())
	state := mood.NewState()

	_ = state.Set(ctx, mood.Calm)
	entry, err := log.AddEntry(ctx, state.Current(), "Quiet evening.")
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	_ = state.Set(ctx, mood.Sad)

	if got := log.Entries()[0].Mood; got != mood.Calm || entry.Mood != mood.Calm {
		t.Errorf("entry mood = %s, want calm regardless of later changes", got)
	}
}

type failingStore struct {
	storage.MemoryStore
	fail bool
}

func (s *failingStore) Set(ctx context.Context, key, value string) error {
	if s.fail {
		return errors.New("disk full")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func TestAddEntry_PersistFailureLeavesLogUnchanged(t *testing.T) {
	store := &failingStore{}
	log, _ := setupTestLog(t, store)

	store.fail = true
	if _, err := log.AddEntry(context.Background(), mood.Happy, "x"); err == nil {
		t.Fatal("AddEntry should report the storage failure")
	}
	if log.Len() != 3 {
		t.Errorf("log has %d entries after a failed write, want 3", log.Len())
	}
}

func TestEntriesForPeriod(t *testing.T) {
	ctx := context.Background()
	log, clock := setupTestLog(t, storage.NewMemoryStore())

	// Demo entries sit at exactly 1, 2 and 3 days back.
	tests := []struct {
		days int
		want []string
	}{
		{0, nil},
		{-3, nil},
		{1, nil}, // exactly on the boundary is excluded
		{2, []string{"1"}},
		{3, []string{"1", "2"}},
		{7, []string{"1", "2", "3"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("days=%d", tt.days), func(t *testing.T) {
			got := log.EntriesForPeriod(tt.days)
			if got == nil {
				t.Fatal("EntriesForPeriod returned nil, want an empty slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("entry %d = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}

	clock.Advance(-time.Millisecond)
	if got := log.EntriesForPeriod(1); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("one millisecond inside the window should include entry 1, got %+v", got)
	}
	clock.Advance(time.Millisecond)

	_, _ = log.AddEntry(ctx, mood.Happy, "today")
	got := log.EntriesForPeriod(7)
	for i := 1; i < len(got); i++ {
		if got[i-1].Timestamp < got[i].Timestamp {
			t.Errorf("entries are not newest first: %d before %d", got[i-1].Timestamp, got[i].Timestamp)
		}
	}
}

func TestMoodTrends(t *testing.T) {
	ctx := context.Background()
	log, _ := setupTestLog(t, storage.NewMemoryStore())

	_, _ = log.AddEntry(ctx, mood.Happy, "a")
	_, _ = log.AddEntry(ctx, mood.Stressed, "b")

	trends := log.MoodTrends()
	if len(trends) != 6 {
		t.Fatalf("trends has %d keys, want 6", len(trends))
	}
	want := map[mood.Mood]int{
		mood.Happy: 2, mood.Sad: 0, mood.Anxious: 1,
		mood.Calm: 1, mood.Stressed: 1, mood.Neutral: 0,
	}
	sum := 0
	for m, n := range want {
		got, ok := trends[m]
		if !ok {
			t.Errorf("trends is missing %s", m)
		}
		if got != n {
			t.Errorf("trends[%s] = %d, want %d", m, got, n)
		}
		sum += got
	}
	if sum != log.Len() {
		t.Errorf("trends sum to %d, want %d", sum, log.Len())
	}
}

func TestExport(t *testing.T) {
	log, _ := setupTestLog(t, storage.NewMemoryStore())

	var buf bytes.Buffer
	if err := log.Export(&buf, "json"); err != nil {
		t.Fatalf("json export: %v", err)
	}
	var fromJSON []Entry
	if err := json.Unmarshal(buf.Bytes(), &fromJSON); err != nil || len(fromJSON) != 3 {
		t.Errorf("json export decoded to %d entries, err %v", len(fromJSON), err)
	}

	buf.Reset()
	if err := log.Export(&buf, "YAML"); err != nil {
		t.Fatalf("yaml export: %v", err)
	}
	var fromYAML []Entry
	if err := yaml.Unmarshal(buf.Bytes(), &fromYAML); err != nil || len(fromYAML) != 3 || fromYAML[1].Mood != mood.Anxious {
		t.Errorf("yaml export decoded to %+v, err %v", fromYAML, err)
	}

	buf.Reset()
	if err := log.Export(&buf, "toml"); err != nil {
		t.Fatalf("toml export: %v", err)
	}
	var fromTOML struct {
		Entries []Entry `toml:"entries"`
	}
	if _, err := toml.Decode(buf.String(), &fromTOML); err != nil || len(fromTOML.Entries) != 3 {
		t.Errorf("toml export decoded to %+v, err %v", fromTOML, err)
	}

	err := log.Export(&buf, "csv")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("csv export error = %v, want ErrUnknownFormat", err)
	}
	if !strings.Contains(err.Error(), "json, yaml, toml") {
		t.Errorf("error should list the supported formats: %v", err)
	}
}
