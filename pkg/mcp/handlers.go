package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/unowned-ai/solace/pkg/gamification"
	"github.com/unowned-ai/solace/pkg/mood"
)

func (s *SolaceMCPServer) registerTools() {
	tools := []struct {
		tool    mcp.Tool
		handler server.ToolHandlerFunc
	}{
		{mcp.NewTool("ping",
			mcp.WithDescription("Responds with 'pong_solace' to check if the Solace MCP server is alive."),
		), s.handlePing},
		{mcp.NewTool("get_mood",
			mcp.WithDescription("Returns the student's current mood with its emoji and label."),
		), s.handleGetMood},
		{mcp.NewTool("set_mood",
			mcp.WithDescription("Sets the student's current mood."),
			mcp.WithString("mood", mcp.Required(), mcp.Description("One of happy, sad, anxious, calm, stressed, neutral.")),
		), s.handleSetMood},
		{mcp.NewTool("add_journal_entry",
			mcp.WithDescription("Adds a journal entry dated today."),
			mcp.WithString("note", mcp.Required(), mcp.Description("The journal text. Must not be blank.")),
			mcp.WithString("mood", mcp.Description("Optional mood for the entry; defaults to the current mood.")),
		), s.handleAddJournalEntry},
		{mcp.NewTool("list_journal_entries",
			mcp.WithDescription("Lists journal entries, newest first."),
			mcp.WithNumber("days", mcp.Description("Optional: only entries from the last N days. Omit or 0 for all.")),
		), s.handleListJournalEntries},
		{mcp.NewTool("get_mood_trends",
			mcp.WithDescription("Counts journal entries per mood."),
		), s.handleGetMoodTrends},
		{mcp.NewTool("list_tasks",
			mcp.WithDescription("Lists the wellness tasks and whether each is completed."),
		), s.handleListTasks},
		{mcp.NewTool("complete_task",
			mcp.WithDescription("Completes a wellness task, awarding its points once."),
			mcp.WithString("id", mcp.Required(), mcp.Description("The task id.")),
		), s.handleCompleteTask},
		{mcp.NewTool("list_badges",
			mcp.WithDescription("Lists badges with their unlock state and progress percentage."),
		), s.handleListBadges},
		{mcp.NewTool("get_wellness_score",
			mcp.WithDescription("Computes the wellness score from tasks, level and recent journaling."),
		), s.handleGetWellnessScore},
		{mcp.NewTool("chat",
			mcp.WithDescription("Sends a message to the support chatbot and returns its reply."),
			mcp.WithString("text", mcp.Required(), mcp.Description("The message to send.")),
		), s.handleChat},
	}

	for _, t := range tools {
		s.mcpServer.AddTool(t.tool, t.handler)
	}
}

func (s *SolaceMCPServer) handlePing(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong_solace"), nil
}

type moodResult struct {
	Mood  mood.Mood `json:"mood"`
	Emoji string    `json:"emoji"`
	Label string    `json:"label"`
}

func (s *SolaceMCPServer) handleGetMood(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m := s.session.Mood.Current()
	return jsonResult(moodResult{Mood: m, Emoji: mood.Emoji(m), Label: mood.Label(m)})
}

func (s *SolaceMCPServer) handleSetMood(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, err := mood.Parse(stringArg(request, "mood"))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid 'mood' parameter: %v", err)), nil
	}
	if err := s.session.SetMood(ctx, m); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to set mood: %v", err)), nil
	}
	return jsonResult(moodResult{Mood: m, Emoji: mood.Emoji(m), Label: mood.Label(m)})
}

func (s *SolaceMCPServer) handleAddJournalEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var m mood.Mood
	if raw := stringArg(request, "mood"); raw != "" {
		parsed, err := mood.Parse(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid 'mood' parameter: %v", err)), nil
		}
		m = parsed
	}

	entry, err := s.session.AddEntry(ctx, m, stringArg(request, "note"))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to add journal entry: %v", err)), nil
	}
	return jsonResult(entry)
}

func (s *SolaceMCPServer) handleListJournalEntries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := intArg(request, "days", 0)
	if days < 0 {
		return mcp.NewToolResultError("'days' must not be negative."), nil
	}
	if days > 0 {
		return jsonResult(s.session.Journal.EntriesForPeriod(days))
	}
	return jsonResult(s.session.Journal.Entries())
}

func (s *SolaceMCPServer) handleGetMoodTrends(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.session.Journal.MoodTrends())
}

func (s *SolaceMCPServer) handleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.session.Game.Tasks())
}

func (s *SolaceMCPServer) handleCompleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(request, "id")
	if id == "" {
		return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
	}

	task, unlocked, err := s.session.CompleteTask(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to complete task: %v", err)), nil
	}
	if unlocked == nil {
		unlocked = []gamification.Badge{}
	}
	return jsonResult(map[string]any{
		"task":            task,
		"unlocked_badges": unlocked,
		"points":          s.session.Game.Points(),
		"level":           s.session.Game.Level(),
	})
}

func (s *SolaceMCPServer) handleListBadges(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type badgeResult struct {
		gamification.Badge
		Progress float64 `json:"progress"`
	}

	badges := s.session.Game.Badges()
	out := make([]badgeResult, 0, len(badges))
	for _, b := range badges {
		pct, err := s.session.Game.BadgeProgress(b.ID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to compute badge progress: %v", err)), nil
		}
		out = append(out, badgeResult{Badge: b, Progress: pct})
	}
	return jsonResult(out)
}

func (s *SolaceMCPServer) handleGetWellnessScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b := s.session.Score()
	return jsonResult(map[string]any{
		"breakdown": b,
		"message":   b.Band.Message(),
	})
}

func (s *SolaceMCPServer) handleChat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := s.session.Chat(ctx, stringArg(request, "text"))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to send message: %v", err)), nil
	}

	select {
	case reply := <-p.Reply():
		return jsonResult(reply)
	case <-ctx.Done():
		return mcp.NewToolResultError("Request cancelled before the reply arrived."), nil
	}
}
