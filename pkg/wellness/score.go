// Package wellness combines journal activity and task progress into a
// single composite score.
package wellness

import (
	"math"

	"github.com/unowned-ai/solace/pkg/gamification"
	"github.com/unowned-ai/solace/pkg/journal"
)

const (
	windowDays   = 7
	taskWeight   = 40
	levelWeight  = 30
	levelScale   = 10
	streakWeight = 30
)

// JournalReader is the slice of the journal the score needs.
type JournalReader interface {
	EntriesForPeriod(days int) []journal.Entry
}

// ProgressReader is the slice of the gamification engine the score needs.
type ProgressReader interface {
	Tasks() []gamification.Task
	Level() int
}

// Breakdown carries every input and term of the score.
type Breakdown struct {
	RecentEntries  int     `json:"recent_entries"`
	JournalStreak  int     `json:"journal_streak"`
	CompletedTasks int     `json:"completed_tasks"`
	TotalTasks     int     `json:"total_tasks"`
	Level          int     `json:"level"`
	TaskScore      float64 `json:"task_score"`
	LevelScore     float64 `json:"level_score"`
	JournalScore   float64 `json:"journal_score"`
	Score          int     `json:"score"`
	Band           Band    `json:"band"`
}

// Compute reads both snapshots and derives the score. The level term is not
// capped, so levels above 10 push the score past 100.
func Compute(j JournalReader, p ProgressReader) Breakdown {
	b := Breakdown{
		RecentEntries: len(j.EntriesForPeriod(windowDays)),
		Level:         p.Level(),
	}
	b.JournalStreak = min(b.RecentEntries, windowDays)

	tasks := p.Tasks()
	b.TotalTasks = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			b.CompletedTasks++
		}
	}

	if b.TotalTasks > 0 {
		b.TaskScore = float64(b.CompletedTasks) / float64(b.TotalTasks) * taskWeight
	}
	b.LevelScore = float64(b.Level) / levelScale * levelWeight
	b.JournalScore = float64(b.JournalStreak) / windowDays * streakWeight

	b.Score = int(math.Round(b.TaskScore + b.LevelScore + b.JournalScore))
	b.Band = BandFor(b.Score)
	return b
}

// Score is Compute(j, p).Score.
func Score(j JournalReader, p ProgressReader) int {
	return Compute(j, p).Score
}
