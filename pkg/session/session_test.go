package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/unowned-ai/solace/pkg/chat"
	"github.com/unowned-ai/solace/pkg/mood"
	"github.com/unowned-ai/solace/pkg/storage"
)

var baseTime = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func openTestSession(t *testing.T, store storage.Store, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{
		WithClock(func() time.Time { return baseTime }),
		WithReplyDelay(0),
	}, opts...)

	s, err := Open(context.Background(), store, opts...)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestOpen_FreshStore(t *testing.T) {
	var hints []mood.Mood
	s := openTestSession(t, storage.NewMemoryStore(), WithMoodHint(func(m mood.Mood) { hints = append(hints, m) }))

	if s.Mood.Current() != mood.Neutral {
		t.Errorf("initial mood = %q, want neutral", s.Mood.Current())
	}
	if s.Journal.Len() != 3 {
		t.Errorf("journal seeded with %d entries, want 3", s.Journal.Len())
	}
	if s.Game.Points() != 0 || s.Game.Level() != 1 {
		t.Errorf("unexpected game state: %d points, level %d", s.Game.Points(), s.Game.Level())
	}
	if s.Bot.Transcript().Len() != 1 {
		t.Errorf("transcript should start with the welcome message")
	}
	if len(hints) != 1 || hints[0] != mood.Neutral {
		t.Errorf("mood hints = %v, want [neutral]", hints)
	}
}

func TestSession_AddEntry(t *testing.T) {
	ctx := context.Background()
	s := openTestSession(t, storage.NewMemoryStore())

	if _, err := s.AddEntry(ctx, mood.Happy, "   "); !errors.Is(err, ErrEmptyNote) {
		t.Errorf("blank note error = %v, want ErrEmptyNote", err)
	}

	if err := s.SetMood(ctx, mood.Calm); err != nil {
		t.Fatalf("SetMood failed: %v", err)
	}
	entry, err := s.AddEntry(ctx, "", "  quiet evening  ")
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if entry.Mood != mood.Calm || entry.Note != "quiet evening" {
		t.Errorf("unexpected entry %+v", entry)
	}
	if got := s.Journal.Entries()[0].ID; got != entry.ID {
		t.Errorf("newest entry id = %q, want %q", got, entry.ID)
	}
}

func TestSession_CompleteTask(t *testing.T) {
	ctx := context.Background()
	s := openTestSession(t, storage.NewMemoryStore())

	if _, _, err := s.CompleteTask(ctx, "99"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("unknown task error = %v, want ErrTaskNotFound", err)
	}

	task, unlocked, err := s.CompleteTask(ctx, "1")
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if !task.Completed || len(unlocked) != 1 || unlocked[0].ID != "1" {
		t.Errorf("got task %+v unlocked %+v", task, unlocked)
	}

	_, unlocked, err = s.CompleteTask(ctx, "1")
	if err != nil || len(unlocked) != 0 || s.Game.Points() != 10 {
		t.Errorf("second completion: unlocked %v, err %v, points %d", unlocked, err, s.Game.Points())
	}
}

func TestSession_ChatAppliesMood(t *testing.T) {
	ctx := context.Background()
	s := openTestSession(t, storage.NewMemoryStore())

	p, err := s.Chat(ctx, "I feel anxious and overwhelmed")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	reply := <-p.Reply()
	if reply.Kind != chat.KindAnxiety {
		t.Errorf("reply kind = %q, want anxiety", reply.Kind)
	}
	if s.Mood.Current() != mood.Anxious {
		t.Errorf("mood = %q, want anxious", s.Mood.Current())
	}

	p, err = s.Chat(ctx, "banana")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reply := <-p.Reply(); reply.Kind != chat.KindDefault {
		t.Errorf("reply kind = %q, want default", reply.Kind)
	}
	if s.Mood.Current() != mood.Anxious {
		t.Errorf("default reply changed mood to %q", s.Mood.Current())
	}
}

func TestSession_Score(t *testing.T) {
	ctx := context.Background()
	s := openTestSession(t, storage.NewMemoryStore())

	// Three demo entries: 3/7*30 = 12.86; level 1: 3; no tasks.
	if got := s.Score().Score; got != 16 {
		t.Errorf("initial score = %d, want 16", got)
	}

	for _, id := range []string{"1", "2", "3", "4"} {
		if _, _, err := s.CompleteTask(ctx, id); err != nil {
			t.Fatalf("CompleteTask(%s) failed: %v", id, err)
		}
	}
	// 40 + 2/10*30 + 12.86 = 58.86
	if got := s.Score().Score; got != 59 {
		t.Errorf("score after all tasks = %d, want 59", got)
	}
}

func TestOpen_RestoresAcrossSessions(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	first := openTestSession(t, store)
	if err := first.SetMood(ctx, mood.Sad); err != nil {
		t.Fatalf("SetMood failed: %v", err)
	}
	if _, err := first.AddEntry(ctx, "", "rainy day"); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if _, _, err := first.CompleteTask(ctx, "4"); err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}

	second := openTestSession(t, store)
	if second.Mood.Current() != mood.Sad {
		t.Errorf("mood = %q, want sad", second.Mood.Current())
	}
	if second.Journal.Len() != 4 {
		t.Errorf("journal length = %d, want 4", second.Journal.Len())
	}
	if second.Game.Points() != 20 {
		t.Errorf("points = %d, want 20", second.Game.Points())
	}
}
