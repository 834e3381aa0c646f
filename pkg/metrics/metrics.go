// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "solace"

// MoodChanges counts explicit mood changes by the mood selected.
var MoodChanges = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "mood",
	Name:      "changes_total",
	Help:      "Mood changes, by resulting mood.",
}, []string{"mood"})

// JournalEntriesAdded counts journal entries written, by mood.
var JournalEntriesAdded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "journal",
	Name:      "entries_added_total",
	Help:      "Journal entries added, by mood.",
}, []string{"mood"})

// TasksCompleted counts first-time task completions by category.
var TasksCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "game",
	Name:      "tasks_completed_total",
	Help:      "Wellness tasks completed, by category.",
}, []string{"category"})

// BadgesUnlocked counts badge unlocks by tier.
var BadgesUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "game",
	Name:      "badges_unlocked_total",
	Help:      "Badges unlocked, by tier.",
}, []string{"tier"})

// Points tracks the current point total.
var Points = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "game",
	Name:      "points",
	Help:      "Current gamification point total.",
})

// WellnessScore tracks the last computed wellness score.
var WellnessScore = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "wellness",
	Name:      "score",
	Help:      "Most recently computed wellness score.",
})

// ChatReplies counts bot replies by response profile.
var ChatReplies = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "chat",
	Name:      "replies_total",
	Help:      "Chatbot replies sent, by response profile.",
}, []string{"profile"})

// HTTPRequestDuration observes API latency by route pattern, method and status.
var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP API request latency.",
	Buckets:   prometheus.DefBuckets,
}, []string{"route", "method", "status"})
