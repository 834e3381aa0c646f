// Package journal implements the append-only mood journal and its
// persistence to the journal-entries slot.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/unowned-ai/solace/pkg/mood"
	"github.com/unowned-ai/solace/pkg/storage"
)

const dayMillis int64 = 86_400_000

// Log holds entries newest first.
type Log struct {
	mu      sync.RWMutex
	entries []Entry

	store  storage.Store
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

type Option func(*Log)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(l *Log) { l.newID = newID }
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) { l.logger = logger }
}

// Load reads the journal slot once. A present, well-formed value is restored
// as-is. A missing or malformed value is replaced by the three demo entries,
// which are written back immediately.
func Load(ctx context.Context, store storage.Store, opts ...Option) (*Log, error) {
	if store == nil {
		panic("journal: Load called without a store")
	}

	l := &Log{
		store:  store,
		now:    time.Now,
		newID:  newEntryID,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	raw, ok, err := store.Get(ctx, storage.KeyJournalEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal slot: %w", err)
	}

	if ok {
		entries, err := decodeEntries(raw)
		if err == nil {
			l.entries = entries
			l.logger.Debug("journal restored", "entries", len(entries))
			return l, nil
		}
		l.logger.Warn("discarding unreadable journal slot", "error", err)
	}

	seeded := demoEntries(l.now())
	if err := l.persist(ctx, seeded); err != nil {
		return nil, err
	}
	l.entries = seeded
	l.logger.Debug("journal seeded with demo entries", "entries", len(seeded))
	return l, nil
}

// AddEntry records a new entry dated today and persists the whole collection.
// The note is stored literally; callers reject blank notes.
func (l *Log) AddEntry(ctx context.Context, m mood.Mood, note string) (Entry, error) {
	if !m.Valid() {
		return Entry{}, fmt.Errorf("%w: %q", mood.ErrUnknownMood, string(m))
	}

	now := l.now()
	entry := Entry{
		ID:        l.newID(),
		Date:      now.Format(time.DateOnly),
		Mood:      m,
		Note:      note,
		Timestamp: now.UnixMilli(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]Entry, 0, len(l.entries)+1)
	next = append(next, entry)
	next = append(next, l.entries...)

	if err := l.persist(ctx, next); err != nil {
		return Entry{}, err
	}
	l.entries = next
	l.logger.Debug("journal entry added", "id", entry.ID, "mood", entry.Mood)
	return entry, nil
}

// Entries returns a copy of the full collection, newest first.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// EntriesForPeriod returns entries created strictly after now minus days,
// in stored order. Non-positive days yield nothing.
func (l *Log) EntriesForPeriod(days int) []Entry {
	if days <= 0 {
		return []Entry{}
	}
	cutoff := l.now().UnixMilli() - int64(days)*dayMillis

	l.mu.RLock()
	defer l.mu.RUnlock()

	out := []Entry{}
	for _, e := range l.entries {
		if e.Timestamp > cutoff {
			out = append(out, e)
		}
	}
	return out
}

// MoodTrends tallies every entry by mood. All six moods are always present.
func (l *Log) MoodTrends() map[mood.Mood]int {
	trends := make(map[mood.Mood]int, len(mood.All()))
	for _, m := range mood.All() {
		trends[m] = 0
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, e := range l.entries {
		trends[e.Mood]++
	}
	return trends
}

func (l *Log) persist(ctx context.Context, entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode journal: %w", err)
	}
	if err := l.store.Set(ctx, storage.KeyJournalEntries, string(data)); err != nil {
		return fmt.Errorf("failed to persist journal: %w", err)
	}
	return nil
}

func decodeEntries(raw string) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		return nil, fmt.Errorf("journal slot holds null")
	}
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("entry %d has no id", i)
		}
		if !e.Mood.Valid() {
			return nil, fmt.Errorf("entry %s has unknown mood %q", e.ID, string(e.Mood))
		}
	}
	return entries, nil
}

func newEntryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func demoEntries(now time.Time) []Entry {
	seed := []struct {
		id   string
		days int64
		mood mood.Mood
		note string
	}{
		{"1", 1, mood.Happy, "Had a great day studying with friends!"},
		{"2", 2, mood.Anxious, "Feeling nervous about upcoming exams."},
		{"3", 3, mood.Calm, "Meditation session helped me relax."},
	}

	entries := make([]Entry, 0, len(seed))
	for _, s := range seed {
		ts := now.UnixMilli() - s.days*dayMillis
		entries = append(entries, Entry{
			ID:        s.id,
			Date:      time.UnixMilli(ts).In(now.Location()).Format(time.DateOnly),
			Mood:      s.mood,
			Note:      s.note,
			Timestamp: ts,
		})
	}
	return entries
}
