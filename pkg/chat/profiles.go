package chat

// Kind names one of the canned response profiles.
type Kind string

const (
	KindDefault      Kind = "default"
	KindAnxiety      Kind = "anxiety"
	KindOverwhelmed  Kind = "overwhelmed"
	KindProfessional Kind = "professional"
)

// Profile is a fixed bot reply. ShowActions asks the presentation layer to
// offer the booking and helpline shortcuts next to the reply.
type Profile struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
	ShowActions bool     `json:"show_actions,omitempty"`
}

var profiles = map[Kind]Profile{
	KindDefault: {
		Message:     "I understand you're going through a difficult time. Can you tell me more about what's bothering you?",
		Suggestions: []string{"I feel overwhelmed", "I can't focus", "I feel lonely", "I'm having panic attacks"},
	},
	KindAnxiety: {
		Message:     "Anxiety can be really challenging. Here are some immediate techniques that might help: Try the 4-7-8 breathing exercise - breathe in for 4, hold for 7, exhale for 8. Would you like me to guide you through this?",
		Suggestions: []string{"Guide me through breathing", "Tell me more coping strategies", "I need professional help"},
		ShowActions: true,
	},
	KindOverwhelmed: {
		Message:     "Feeling overwhelmed is very common among students. Let's break this down: What's your biggest stressor right now? Academic work, social situations, or something else?",
		Suggestions: []string{"Academic pressure", "Social anxiety", "Financial stress", "Family issues"},
	},
	KindProfessional: {
		Message:     "It sounds like you might benefit from speaking with a professional counselor. I can help you book an appointment with our on-campus mental health services, or connect you with our 24/7 helpline.",
		Suggestions: []string{"Book counselor appointment", "Call helpline now", "Learn more about services"},
		ShowActions: true,
	},
}

const welcomeMessage = "Hi there! I'm here to help with your mental wellness. How are you feeling today?"

var welcomeSuggestions = []string{"I feel anxious", "I'm feeling sad", "I need study tips", "I can't sleep"}

// ProfileFor returns a copy of the profile for k, falling back to the default profile.
func ProfileFor(k Kind) Profile {
	p, ok := profiles[k]
	if !ok {
		p = profiles[KindDefault]
	}
	p.Suggestions = append([]string(nil), p.Suggestions...)
	return p
}
