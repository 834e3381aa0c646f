// Package chat implements the scripted support chatbot: a keyword
// classifier over canned response profiles, the running transcript and the
// deferred reply pipeline.
package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/unowned-ai/solace/pkg/mood"
)

// MoodSetter receives the mood implied by a classified message.
type MoodSetter interface {
	Set(ctx context.Context, m mood.Mood) error
}

type rule struct {
	keywords []string
	kind     Kind
	mood     mood.Mood // empty means no mood change
}

// Rules are tried in order and the first match wins.
var rules = []rule{
	{keywords: []string{"anxious", "anxiety", "panic"}, kind: KindAnxiety, mood: mood.Anxious},
	{keywords: []string{"overwhelmed", "stress"}, kind: KindOverwhelmed, mood: mood.Stressed},
	{keywords: []string{"help", "counselor", "professional"}, kind: KindProfessional},
}

// Classify maps free text to a profile kind by case-insensitive substring
// match. Text matching no rule is KindDefault.
func Classify(text string) Kind {
	k, _ := classify(text)
	return k
}

func classify(text string) (Kind, mood.Mood) {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.kind, r.mood
			}
		}
	}
	return KindDefault, ""
}

// Selector classifies messages and applies their mood side effect.
type Selector struct {
	moods  MoodSetter
	logger *slog.Logger
}

func NewSelector(moods MoodSetter, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{moods: moods, logger: logger}
}

// Select classifies text, updates the mood when the matched rule implies
// one, and returns the chosen profile. It never blocks on anything but the
// mood setter.
func (s *Selector) Select(ctx context.Context, text string) (Kind, Profile) {
	kind, m := classify(text)
	if m != "" && s.moods != nil {
		if err := s.moods.Set(ctx, m); err != nil {
			s.logger.Error("failed to apply chat mood", "mood", m, "error", err)
		}
	}
	s.logger.Debug("chat message classified", "kind", kind)
	return kind, ProfileFor(kind)
}
