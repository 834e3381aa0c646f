// Package session wires the mood, journal, gamification and chat components
// over one persistence store. Every presentation layer drives the same
// Session, so validation and metrics live here rather than in each transport.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/unowned-ai/solace/pkg/breathing"
	"github.com/unowned-ai/solace/pkg/chat"
	"github.com/unowned-ai/solace/pkg/gamification"
	"github.com/unowned-ai/solace/pkg/journal"
	"github.com/unowned-ai/solace/pkg/metrics"
	"github.com/unowned-ai/solace/pkg/mood"
	"github.com/unowned-ai/solace/pkg/storage"
	"github.com/unowned-ai/solace/pkg/wellness"
)

var (
	ErrEmptyNote    = errors.New("journal note must not be empty")
	ErrTaskNotFound = errors.New("task not found")
)

type options struct {
	logger     *slog.Logger
	replyDelay time.Duration
	clock      func() time.Time
	moodHint   mood.HintFunc
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithReplyDelay(d time.Duration) Option {
	return func(o *options) { o.replyDelay = d }
}

// WithClock sets the clock used for journal dates and chat timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// WithMoodHint registers the theme callback invoked on every mood change.
func WithMoodHint(hint mood.HintFunc) Option {
	return func(o *options) { o.moodHint = hint }
}

// Session is the whole application state for one user.
type Session struct {
	Mood      *mood.State
	Journal   *journal.Log
	Game      *gamification.Engine
	Bot       *chat.Bot
	Breathing *breathing.Guide

	logger *slog.Logger
}

// Open loads every component from store. Each slot is read exactly once.
func Open(ctx context.Context, store storage.Store, opts ...Option) (*Session, error) {
	if store == nil {
		panic("session: Open called without a store")
	}

	o := options{
		logger:     slog.Default(),
		replyDelay: chat.DefaultReplyDelay,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	moodState, err := mood.Load(ctx,
		mood.WithStore(store),
		mood.WithHint(o.moodHint),
		mood.WithLogger(o.logger.With("component", "mood")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood: %w", err)
	}

	log, err := journal.Load(ctx, store,
		journal.WithClock(o.clock),
		journal.WithLogger(o.logger.With("component", "journal")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}

	game, err := gamification.Load(ctx, store,
		gamification.WithLogger(o.logger.With("component", "game")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load game progress: %w", err)
	}
	metrics.Points.Set(float64(game.Points()))

	chatLogger := o.logger.With("component", "chat")
	bot := chat.NewBot(chat.NewSelector(moodState, chatLogger),
		chat.WithReplyDelay(o.replyDelay),
		chat.WithBotClock(o.clock),
		chat.WithBotLogger(chatLogger),
		chat.WithReplyHook(func(m chat.Message) {
			metrics.ChatReplies.WithLabelValues(string(m.Kind)).Inc()
		}),
	)

	return &Session{
		Mood:      moodState,
		Journal:   log,
		Game:      game,
		Bot:       bot,
		Breathing: breathing.NewGuide(),
		logger:    o.logger,
	}, nil
}

func (s *Session) SetMood(ctx context.Context, m mood.Mood) error {
	if err := s.Mood.Set(ctx, m); err != nil {
		return err
	}
	metrics.MoodChanges.WithLabelValues(string(m)).Inc()
	return nil
}

// AddEntry trims note and journals it under m, or under the current mood
// when m is empty.
func (s *Session) AddEntry(ctx context.Context, m mood.Mood, note string) (journal.Entry, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return journal.Entry{}, ErrEmptyNote
	}
	if m == "" {
		m = s.Mood.Current()
	}

	entry, err := s.Journal.AddEntry(ctx, m, note)
	if err != nil {
		return journal.Entry{}, err
	}
	metrics.JournalEntriesAdded.WithLabelValues(string(entry.Mood)).Inc()
	return entry, nil
}

// CompleteTask completes the task with id and reports it along with any
// badges it unlocked. Completing an already completed task returns it
// unchanged with no badges.
func (s *Session) CompleteTask(ctx context.Context, id string) (gamification.Task, []gamification.Badge, error) {
	before, ok := s.Game.Task(id)
	if !ok {
		return gamification.Task{}, nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	unlocked, err := s.Game.CompleteTask(ctx, id)
	if err != nil {
		return gamification.Task{}, nil, err
	}
	after, _ := s.Game.Task(id)

	if !before.Completed && after.Completed {
		metrics.TasksCompleted.WithLabelValues(string(after.Category)).Inc()
	}
	for _, b := range unlocked {
		metrics.BadgesUnlocked.WithLabelValues(string(b.Tier)).Inc()
	}
	metrics.Points.Set(float64(s.Game.Points()))
	return after, unlocked, nil
}

// Chat sends text to the bot. The reply arrives on the returned Pending.
func (s *Session) Chat(ctx context.Context, text string) (*chat.Pending, error) {
	return s.Bot.Send(ctx, text)
}

// Score computes the wellness score from the current journal and progress.
func (s *Session) Score() wellness.Breakdown {
	b := wellness.Compute(s.Journal, s.Game)
	metrics.WellnessScore.Set(float64(b.Score))
	return b
}

// Close waits for outstanding chat replies so their mood side effects land
// before the store is closed.
func (s *Session) Close() {
	s.Bot.Wait()
}
