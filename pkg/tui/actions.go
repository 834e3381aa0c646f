package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unowned-ai/solace/pkg/chat"
	"github.com/unowned-ai/solace/pkg/gamification"
	"github.com/unowned-ai/solace/pkg/journal"
	"github.com/unowned-ai/solace/pkg/mood"
	"github.com/unowned-ai/solace/pkg/session"
)

type moodSetMsg mood.Mood

type entryAddedMsg journal.Entry

type taskCompletedMsg struct {
	task     gamification.Task
	unlocked []gamification.Badge
}

type chatSentMsg chat.Message

// chatReplyMsg is delivered by the bot's reply hook through Program.Send.
type chatReplyMsg chat.Message

// breathTickMsg carries the run it belongs to so ticks from a paused run are dropped.
type breathTickMsg struct{ run int }

func setMood(s *session.Session, m mood.Mood) tea.Cmd {
	return func() tea.Msg {
		if err := s.SetMood(context.Background(), m); err != nil {
			return err
		}
		return moodSetMsg(m)
	}
}

func addEntry(s *session.Session, note string) tea.Cmd {
	return func() tea.Msg {
		entry, err := s.AddEntry(context.Background(), "", note)
		if err != nil {
			return err
		}
		return entryAddedMsg(entry)
	}
}

func completeTask(s *session.Session, id string) tea.Cmd {
	return func() tea.Msg {
		task, unlocked, err := s.CompleteTask(context.Background(), id)
		if err != nil {
			return err
		}
		return taskCompletedMsg{task: task, unlocked: unlocked}
	}
}

func sendChat(s *session.Session, text string) tea.Cmd {
	return func() tea.Msg {
		p, err := s.Chat(context.Background(), text)
		if err != nil {
			return err
		}
		return chatSentMsg(p.User)
	}
}

func breathTick(run int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return breathTickMsg{run: run}
	})
}
