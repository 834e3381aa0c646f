package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/unowned-ai/solace/pkg/chat"
	"github.com/unowned-ai/solace/pkg/journal"
	"github.com/unowned-ai/solace/pkg/mood"
	"github.com/unowned-ai/solace/pkg/session"
	"github.com/unowned-ai/solace/pkg/storage"
)

func setupTestServer(t *testing.T) *SolaceMCPServer {
	t.Helper()
	sess, err := session.Open(context.Background(), storage.NewMemoryStore(),
		session.WithReplyDelay(0),
		session.WithClock(func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) }),
	)
	if err != nil {
		t.Fatalf("session.Open failed: %v", err)
	}
	t.Cleanup(sess.Close)
	return NewSolaceMCPServer(sess, nil)
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	return text.Text
}

func TestPing(t *testing.T) {
	s := setupTestServer(t)
	res, err := s.handlePing(context.Background(), callRequest("ping", nil))
	if err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	if got := resultText(t, res); got != "pong_solace" {
		t.Errorf("ping = %q", got)
	}
}

func TestSetMood(t *testing.T) {
	ctx := context.Background()
	s := setupTestServer(t)

	res, err := s.handleSetMood(ctx, callRequest("set_mood", map[string]any{"mood": "happy"}))
	if err != nil || res.IsError {
		t.Fatalf("set_mood failed: %v %s", err, resultText(t, res))
	}
	if s.session.Mood.Current() != mood.Happy {
		t.Errorf("mood = %q, want happy", s.session.Mood.Current())
	}

	res, _ = s.handleSetMood(ctx, callRequest("set_mood", map[string]any{"mood": "elated"}))
	if !res.IsError {
		t.Error("expected an error result for an unknown mood")
	}

	res, _ = s.handleGetMood(ctx, callRequest("get_mood", nil))
	var got moodResult
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Mood != mood.Happy || got.Emoji != "😊" {
		t.Errorf("get_mood = %+v", got)
	}
}

func TestJournalTools(t *testing.T) {
	ctx := context.Background()
	s := setupTestServer(t)

	res, _ := s.handleAddJournalEntry(ctx, callRequest("add_journal_entry", map[string]any{"note": "   "}))
	if !res.IsError {
		t.Error("expected an error result for a blank note")
	}

	res, _ = s.handleAddJournalEntry(ctx, callRequest("add_journal_entry", map[string]any{"note": "library day", "mood": "calm"}))
	if res.IsError {
		t.Fatalf("add_journal_entry failed: %s", resultText(t, res))
	}

	res, _ = s.handleListJournalEntries(ctx, callRequest("list_journal_entries", map[string]any{"days": float64(1)}))
	var entries []journal.Entry
	if err := json.Unmarshal([]byte(resultText(t, res)), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 1 || entries[0].Note != "library day" {
		t.Errorf("days=1 entries = %+v", entries)
	}

	res, _ = s.handleGetMoodTrends(ctx, callRequest("get_mood_trends", nil))
	var trends map[string]int
	if err := json.Unmarshal([]byte(resultText(t, res)), &trends); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if trends["calm"] != 2 {
		t.Errorf("calm count = %d, want 2", trends["calm"])
	}
}

func TestCompleteTask(t *testing.T) {
	ctx := context.Background()
	s := setupTestServer(t)

	res, _ := s.handleCompleteTask(ctx, callRequest("complete_task", map[string]any{"id": "2"}))
	if res.IsError {
		t.Fatalf("complete_task failed: %s", resultText(t, res))
	}
	if !strings.Contains(resultText(t, res), `"points":15`) {
		t.Errorf("unexpected result %s", resultText(t, res))
	}

	res, _ = s.handleCompleteTask(ctx, callRequest("complete_task", map[string]any{"id": "42"}))
	if !res.IsError {
		t.Error("expected an error result for an unknown task")
	}
}

func TestChatTool(t *testing.T) {
	ctx := context.Background()
	s := setupTestServer(t)

	res, err := s.handleChat(ctx, callRequest("chat", map[string]any{"text": "I am so stressed"}))
	if err != nil || res.IsError {
		t.Fatalf("chat failed: %v", err)
	}
	var reply chat.Message
	if err := json.Unmarshal([]byte(resultText(t, res)), &reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reply.Kind != chat.KindOverwhelmed || s.session.Mood.Current() != mood.Stressed {
		t.Errorf("reply kind %q, mood %q", reply.Kind, s.session.Mood.Current())
	}
}

func TestWellnessScoreTool(t *testing.T) {
	s := setupTestServer(t)
	res, _ := s.handleGetWellnessScore(context.Background(), callRequest("get_wellness_score", nil))
	if !strings.Contains(resultText(t, res), `"score":16`) {
		t.Errorf("unexpected score result %s", resultText(t, res))
	}
}
