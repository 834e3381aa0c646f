package chat

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type Message struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	Sender      Sender    `json:"sender"`
	Timestamp   time.Time `json:"timestamp"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Kind        Kind      `json:"kind,omitempty"`
	ShowActions bool      `json:"show_actions,omitempty"`
}

// Transcript is the append-only message list, in append order.
type Transcript struct {
	mu       sync.RWMutex
	messages []Message
}

// NewTranscript starts a transcript with the bot's welcome message.
func NewTranscript(now time.Time) *Transcript {
	return &Transcript{
		messages: []Message{{
			ID:          uuid.NewString(),
			Content:     welcomeMessage,
			Sender:      SenderBot,
			Timestamp:   now,
			Suggestions: slices.Clone(welcomeSuggestions),
		}},
	}
}

func (t *Transcript) Append(m Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, m)
}

func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.messages)
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// Suggestions returns the quick replies of the last message when it came from the bot.
func (t *Transcript) Suggestions() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.messages) == 0 {
		return nil
	}
	last := t.messages[len(t.messages)-1]
	if last.Sender != SenderBot {
		return nil
	}
	return slices.Clone(last.Suggestions)
}
