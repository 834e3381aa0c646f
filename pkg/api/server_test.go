package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/unowned-ai/solace/pkg/chat"
	"github.com/unowned-ai/solace/pkg/journal"
	"github.com/unowned-ai/solace/pkg/mood"
	"github.com/unowned-ai/solace/pkg/session"
	"github.com/unowned-ai/solace/pkg/storage"
)

func setupTestServer(t *testing.T) (http.Handler, *session.Session) {
	t.Helper()
	s, err := session.Open(context.Background(), storage.NewMemoryStore(),
		session.WithReplyDelay(0),
		session.WithClock(func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) }),
	)
	if err != nil {
		t.Fatalf("session.Open failed: %v", err)
	}
	t.Cleanup(s.Close)
	return NewServer(s, nil).Handler(), s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func TestHealthz(t *testing.T) {
	h, _ := setupTestServer(t)
	w := do(t, h, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp map[string]string
	decode(t, w, &resp)
	if resp["status"] != "ok" {
		t.Errorf("unexpected body %v", resp)
	}
}

func TestMood_GetAndPut(t *testing.T) {
	h, s := setupTestServer(t)

	var got MoodView
	decode(t, do(t, h, http.MethodGet, "/api/mood", ""), &got)
	if got.Mood != mood.Neutral || got.Emoji != "😐" {
		t.Errorf("unexpected mood %+v", got)
	}

	w := do(t, h, http.MethodPut, "/api/mood", `{"mood":"calm"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if s.Mood.Current() != mood.Calm {
		t.Errorf("session mood = %q, want calm", s.Mood.Current())
	}

	w = do(t, h, http.MethodPut, "/api/mood", `{"mood":"ecstatic"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var errBody map[string]string
	decode(t, w, &errBody)
	if !strings.Contains(errBody["error"], "unknown mood") {
		t.Errorf("unexpected error body %v", errBody)
	}
}

func TestMoods_List(t *testing.T) {
	h, _ := setupTestServer(t)
	var views []MoodView
	decode(t, do(t, h, http.MethodGet, "/api/moods", ""), &views)
	if len(views) != 6 {
		t.Errorf("expected 6 moods, got %d", len(views))
	}
}

func TestJournal_AddAndList(t *testing.T) {
	h, _ := setupTestServer(t)

	w := do(t, h, http.MethodPost, "/api/journal", `{"mood":"happy","note":"  aced the quiz "}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var entry journal.Entry
	decode(t, w, &entry)
	if entry.Note != "aced the quiz" || entry.Mood != mood.Happy {
		t.Errorf("unexpected entry %+v", entry)
	}

	var entries []journal.Entry
	decode(t, do(t, h, http.MethodGet, "/api/journal", ""), &entries)
	if len(entries) != 4 || entries[0].ID != entry.ID {
		t.Errorf("expected new entry first of 4, got %d entries", len(entries))
	}

	decode(t, do(t, h, http.MethodGet, "/api/journal?days=2", ""), &entries)
	if len(entries) != 2 {
		t.Errorf("days=2 returned %d entries, want 2", len(entries))
	}

	if w := do(t, h, http.MethodPost, "/api/journal", `{"note":"   "}`); w.Code != http.StatusBadRequest {
		t.Errorf("blank note: expected 400, got %d", w.Code)
	}
}

func TestJournal_Trends(t *testing.T) {
	h, _ := setupTestServer(t)
	var trends map[string]int
	decode(t, do(t, h, http.MethodGet, "/api/journal/trends", ""), &trends)
	if len(trends) != 6 || trends["happy"] != 1 || trends["anxious"] != 1 || trends["calm"] != 1 {
		t.Errorf("unexpected trends %v", trends)
	}
}

func TestTasks_Complete(t *testing.T) {
	h, _ := setupTestServer(t)

	w := do(t, h, http.MethodPost, "/api/tasks/4/complete", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var done CompletionView
	decode(t, w, &done)
	if !done.Task.Completed || done.Points != 20 || len(done.Unlocked) != 1 {
		t.Errorf("unexpected completion %+v", done)
	}

	if w := do(t, h, http.MethodPost, "/api/tasks/nope/complete", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown task: expected 404, got %d", w.Code)
	}

	var badges []BadgeView
	decode(t, do(t, h, http.MethodGet, "/api/badges", ""), &badges)
	if len(badges) != 4 || !badges[0].Unlocked || badges[1].Progress != 40 {
		t.Errorf("unexpected badges %+v", badges)
	}

	var progress ProgressView
	decode(t, do(t, h, http.MethodGet, "/api/progress", ""), &progress)
	if progress.Points != 20 || progress.Progress.Level != 1 || progress.Progress.NextLevelAt != 50 {
		t.Errorf("unexpected progress %+v", progress)
	}
}

func TestScore(t *testing.T) {
	h, _ := setupTestServer(t)
	var score ScoreView
	decode(t, do(t, h, http.MethodGet, "/api/score", ""), &score)
	if score.Score != 16 || score.Band != "starting" || score.Message == "" {
		t.Errorf("unexpected score %+v", score)
	}
}

func TestChat_SendWaitsForReply(t *testing.T) {
	h, s := setupTestServer(t)

	w := do(t, h, http.MethodPost, "/api/chat", `{"text":"I keep having panic attacks"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var ex ExchangeView
	decode(t, w, &ex)
	if ex.User.Sender != chat.SenderUser || ex.Reply.Kind != chat.KindAnxiety || !ex.Reply.ShowActions {
		t.Errorf("unexpected exchange %+v", ex)
	}
	if s.Mood.Current() != mood.Anxious {
		t.Errorf("mood = %q, want anxious", s.Mood.Current())
	}

	var transcript []chat.Message
	decode(t, do(t, h, http.MethodGet, "/api/chat", ""), &transcript)
	if len(transcript) != 3 {
		t.Errorf("transcript length = %d, want 3", len(transcript))
	}

	if w := do(t, h, http.MethodPost, "/api/chat", `{"text":"  "}`); w.Code != http.StatusBadRequest {
		t.Errorf("blank chat: expected 400, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := setupTestServer(t)
	do(t, h, http.MethodGet, "/api/score", "")

	w := do(t, h, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("solace_wellness_score")) {
		t.Error("metrics output missing solace_wellness_score")
	}
}
