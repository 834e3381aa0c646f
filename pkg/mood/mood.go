// Package mood holds the user's current self-reported mood.
package mood

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/unowned-ai/solace/pkg/storage"
)

var ErrUnknownMood = errors.New("unknown mood")

type Mood string

const (
	Happy    Mood = "happy"
	Sad      Mood = "sad"
	Anxious  Mood = "anxious"
	Calm     Mood = "calm"
	Stressed Mood = "stressed"
	Neutral  Mood = "neutral"
)

// Initial is the mood every new session starts in.
const Initial = Neutral

var all = []Mood{Happy, Sad, Anxious, Calm, Stressed, Neutral}

var emojis = map[Mood]string{
	Happy:    "😊",
	Sad:      "😢",
	Anxious:  "😰",
	Calm:     "😌",
	Stressed: "😵",
	Neutral:  "😐",
}

var labels = map[Mood]string{
	Happy:    "Happy",
	Sad:      "Sad",
	Anxious:  "Anxious",
	Calm:     "Calm",
	Stressed: "Stressed",
	Neutral:  "Neutral",
}

// All returns the six moods in display order.
func All() []Mood {
	out := make([]Mood, len(all))
	copy(out, all)
	return out
}

func (m Mood) Valid() bool {
	_, ok := emojis[m]
	return ok
}

func (m Mood) String() string { return string(m) }

// Parse accepts a mood name in any case, ignoring surrounding whitespace.
func Parse(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMood, s)
	}
	return m, nil
}

// Emoji returns the glyph for m. It panics if m is outside the enumeration.
func Emoji(m Mood) string {
	e, ok := emojis[m]
	if !ok {
		panic(fmt.Sprintf("mood: no emoji for %q", string(m)))
	}
	return e
}

// Label returns the display name for m. It panics if m is outside the enumeration.
func Label(m Mood) string {
	l, ok := labels[m]
	if !ok {
		panic(fmt.Sprintf("mood: no label for %q", string(m)))
	}
	return l
}

// HintFunc receives the styling tag for the new mood after every change.
type HintFunc func(Mood)

// State owns the process-wide current-mood slot.
type State struct {
	mu      sync.RWMutex
	current Mood

	store  storage.Store
	hint   HintFunc
	logger *slog.Logger
}

type Option func(*State)

// WithStore persists the current mood under storage.KeyCurrentMood.
func WithStore(store storage.Store) Option {
	return func(s *State) { s.store = store }
}

func WithHint(hint HintFunc) Option {
	return func(s *State) { s.hint = hint }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *State) { s.logger = logger }
}

// NewState returns a State holding Initial.
func NewState(opts ...Option) *State {
	s := &State{current: Initial, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load builds a State and restores the last mood from its store, if any.
// A missing or unrecognised value leaves the state at Initial.
func Load(ctx context.Context, opts ...Option) (*State, error) {
	s := NewState(opts...)
	if s.store == nil {
		s.notify(s.current)
		return s, nil
	}

	raw, ok, err := s.store.Get(ctx, storage.KeyCurrentMood)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood: %w", err)
	}
	if ok {
		m, err := Parse(raw)
		if err != nil {
			s.logger.Warn("discarding unreadable mood slot", "value", raw)
		} else {
			s.current = m
		}
	}
	s.notify(s.current)
	return s, nil
}

func (s *State) Current() Mood {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Emoji is the glyph of the current mood.
func (s *State) Emoji() string {
	return Emoji(s.Current())
}

// Set replaces the current mood, emits the presentation hint and persists it.
func (s *State) Set(ctx context.Context, m Mood) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMood, string(m))
	}

	s.mu.Lock()
	s.current = m
	s.mu.Unlock()

	s.notify(m)

	if s.store != nil {
		if err := s.store.Set(ctx, storage.KeyCurrentMood, string(m)); err != nil {
			return fmt.Errorf("failed to persist mood: %w", err)
		}
	}
	s.logger.Debug("mood set", "mood", m)
	return nil
}

func (s *State) notify(m Mood) {
	if s.hint != nil {
		s.hint(m)
	}
}
