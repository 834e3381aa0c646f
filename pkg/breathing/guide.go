// Package breathing implements the guided breathing exercise as a small
// state machine advanced by explicit one-second ticks.
package breathing

import (
	"context"
	"sync"
	"time"
)

type Phase string

const (
	Inhale Phase = "inhale"
	Hold   Phase = "hold"
	Exhale Phase = "exhale"
)

// Duration returns the phase length in seconds.
func (p Phase) Duration() int {
	switch p {
	case Inhale:
		return 4
	case Hold:
		return 4
	case Exhale:
		return 6
	}
	panic("breathing: unknown phase " + string(p))
}

// Instruction is the prompt shown while the phase is active.
func (p Phase) Instruction() string {
	switch p {
	case Inhale:
		return "Breathe In..."
	case Hold:
		return "Hold..."
	case Exhale:
		return "Breathe Out..."
	}
	panic("breathing: unknown phase " + string(p))
}

func (p Phase) next() Phase {
	switch p {
	case Inhale:
		return Hold
	case Hold:
		return Exhale
	default:
		return Inhale
	}
}

// State is a snapshot of the guide.
type State struct {
	Phase   Phase `json:"phase"`
	Seconds int   `json:"seconds"`
	Cycles  int   `json:"cycles"`
}

// Remaining is the number of seconds left in the current phase, counting the current one.
func (s State) Remaining() int {
	return s.Phase.Duration() - s.Seconds
}

// Guide is safe for use from a ticker goroutine and a reader at once.
type Guide struct {
	mu    sync.Mutex
	state State
}

func NewGuide() *Guide {
	return &Guide{state: State{Phase: Inhale}}
}

// Tick applies n one-second steps and returns the resulting state.
func (g *Guide) Tick(n int) State {
	g.mu.Lock()
	defer g.mu.Unlock()

	for range n {
		s := &g.state
		if s.Seconds >= s.Phase.Duration()-1 {
			if s.Phase == Exhale {
				s.Cycles++
			}
			s.Phase = s.Phase.next()
			s.Seconds = 0
			continue
		}
		s.Seconds++
	}
	return g.state
}

func (g *Guide) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = State{Phase: Inhale}
}

func (g *Guide) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Guide) Instruction() string {
	return g.State().Phase.Instruction()
}

// Scale is the size of the breathing circle: it grows from 0.5 to 1 while
// inhaling, stays at 1 while holding and shrinks back to 0.5 while exhaling.
func (g *Guide) Scale() float64 {
	return g.State().Scale()
}

func (s State) Scale() float64 {
	progress := float64(s.Seconds) / float64(s.Phase.Duration())
	switch s.Phase {
	case Inhale:
		return 0.5 + progress*0.5
	case Exhale:
		return 1 - progress*0.5
	default:
		return 1
	}
}

// Run ticks g once per interval and hands every new state to observe until
// ctx is done. The ticker is released on return.
func (g *Guide) Run(ctx context.Context, interval time.Duration, observe func(State)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s := g.Tick(1)
			if observe != nil {
				observe(s)
			}
		}
	}
}
