package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultReplyDelay is how long the bot "types" before replying.
const DefaultReplyDelay = 1500 * time.Millisecond

// ErrEmptyMessage is returned for input that is blank after trimming.
var ErrEmptyMessage = errors.New("empty message")

// ReplyFunc observes every bot reply after it has been appended.
type ReplyFunc func(Message)

// Bot owns the transcript and schedules deferred replies.
type Bot struct {
	selector   *Selector
	transcript *Transcript
	delay      time.Duration
	now        func() time.Time
	logger     *slog.Logger

	hooksMu sync.RWMutex
	hooks   []ReplyFunc

	pending sync.WaitGroup
}

type BotOption func(*Bot)

func WithReplyDelay(d time.Duration) BotOption {
	return func(b *Bot) {
		if d >= 0 {
			b.delay = d
		}
	}
}

func WithBotClock(now func() time.Time) BotOption {
	return func(b *Bot) { b.now = now }
}

func WithBotLogger(logger *slog.Logger) BotOption {
	return func(b *Bot) { b.logger = logger }
}

func WithReplyHook(fn ReplyFunc) BotOption {
	return func(b *Bot) { b.hooks = append(b.hooks, fn) }
}

// NewBot builds a bot with a fresh transcript seeded with the welcome message.
func NewBot(selector *Selector, opts ...BotOption) *Bot {
	if selector == nil {
		panic("chat: nil selector")
	}
	b := &Bot{
		selector: selector,
		delay:    DefaultReplyDelay,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.transcript = NewTranscript(b.now())
	return b
}

// Transcript returns the bot's live transcript.
func (b *Bot) Transcript() *Transcript {
	return b.transcript
}

// OnReply registers an observer for replies sent from now on.
func (b *Bot) OnReply(fn ReplyFunc) {
	b.hooksMu.Lock()
	defer b.hooksMu.Unlock()
	b.hooks = append(b.hooks, fn)
}

// Pending is a sent user message whose reply has not necessarily arrived.
type Pending struct {
	User  Message
	reply chan Message
}

// Reply delivers the bot's answer exactly once.
func (p *Pending) Reply() <-chan Message {
	return p.reply
}

// Send appends the user message and schedules the reply after the default delay.
func (b *Bot) Send(ctx context.Context, text string) (*Pending, error) {
	return b.SendAfter(ctx, text, b.delay)
}

// ClickSuggestion sends a quick-reply suggestion as if it had been typed.
func (b *Bot) ClickSuggestion(ctx context.Context, suggestion string) (*Pending, error) {
	return b.Send(ctx, suggestion)
}

// SendAfter appends the user message immediately and replies after delay.
// Replies from overlapping sends are appended in the order their timers fire.
// The reply outlives ctx cancellation; ctx only carries values to the mood setter.
func (b *Bot) SendAfter(ctx context.Context, text string, delay time.Duration) (*Pending, error) {
	content := strings.TrimSpace(text)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	user := Message{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    SenderUser,
		Timestamp: b.now(),
	}
	b.transcript.Append(user)

	p := &Pending{User: user, reply: make(chan Message, 1)}
	replyCtx := context.WithoutCancel(ctx)

	b.pending.Add(1)
	time.AfterFunc(delay, func() {
		defer b.pending.Done()
		p.reply <- b.reply(replyCtx, content)
		close(p.reply)
	})
	return p, nil
}

func (b *Bot) reply(ctx context.Context, text string) Message {
	kind, profile := b.selector.Select(ctx, text)
	msg := Message{
		ID:          uuid.NewString(),
		Content:     profile.Message,
		Sender:      SenderBot,
		Timestamp:   b.now(),
		Suggestions: profile.Suggestions,
		Kind:        kind,
		ShowActions: profile.ShowActions,
	}
	b.transcript.Append(msg)
	b.logger.Debug("chat reply sent", "kind", kind, "message_id", msg.ID)

	b.hooksMu.RLock()
	hooks := append([]ReplyFunc(nil), b.hooks...)
	b.hooksMu.RUnlock()
	for _, fn := range hooks {
		fn(msg)
	}
	return msg
}

// Wait blocks until every scheduled reply has been appended.
func (b *Bot) Wait() {
	b.pending.Wait()
}
