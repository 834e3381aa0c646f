// Package gamification tracks wellness points, the level derived from
// them, and the task and badge catalogs.
package gamification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/unowned-ai/solace/pkg/storage"
)

// PointsPerLevel is the width of every level band.
const PointsPerLevel = 50

var (
	ErrNegativePoints = errors.New("points must not be negative")
	ErrBadgeNotFound  = errors.New("badge not found")
)

// LevelFor derives the level from a point total: 0-49 is level 1, 50-99 level 2, and so on.
func LevelFor(points int) int {
	return points/PointsPerLevel + 1
}

// LevelProgress describes how far the current level has been filled.
type LevelProgress struct {
	Level           int `json:"level"`
	PointsIntoLevel int `json:"points_into_level"`
	NextLevelAt     int `json:"next_level_at"`
}

// Engine owns the points total and both catalogs. Every exported method is
// safe for concurrent use.
type Engine struct {
	mu     sync.RWMutex
	points int
	tasks  []Task
	badges []Badge

	store  storage.Store
	logger *slog.Logger
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New returns an engine at zero points that keeps its progress in memory only.
func New(opts ...Option) *Engine {
	e := &Engine{
		tasks:  DefaultTasks(),
		badges: DefaultBadges(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load returns an engine bound to store. Saved progress is restored; a
// missing or malformed slot starts from zero.
func Load(ctx context.Context, store storage.Store, opts ...Option) (*Engine, error) {
	e := New(opts...)
	e.store = store

	raw, ok, err := store.Get(ctx, storage.KeyGameProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to read game progress: %w", err)
	}
	if !ok {
		return e, nil
	}

	if err := e.restore(raw); err != nil {
		e.logger.Warn("discarding unreadable game progress", "error", err)
		e.tasks = DefaultTasks()
		e.badges = DefaultBadges()
		e.points = 0
	}
	return e, nil
}

// CompleteTask marks the task completed and awards its points. Unknown ids
// and tasks that are already completed are silent no-ops. It returns the
// badges unlocked by the award.
func (e *Engine) CompleteTask(ctx context.Context, taskID string) ([]Badge, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := slices.IndexFunc(e.tasks, func(t Task) bool { return t.ID == taskID })
	if idx < 0 || e.tasks[idx].Completed {
		return nil, nil
	}

	tasks := slices.Clone(e.tasks)
	tasks[idx].Completed = true

	unlocked, err := e.award(ctx, tasks, tasks[idx].Points)
	if err != nil {
		return nil, err
	}
	e.logger.Info("task completed", "task", tasks[idx].Title, "points", tasks[idx].Points, "total", e.points)
	return unlocked, nil
}

// AddPoints adds amount to the total and unlocks every badge whose
// threshold the new total reaches. It returns the newly unlocked badges in
// threshold order.
func (e *Engine) AddPoints(ctx context.Context, amount int) ([]Badge, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativePoints, amount)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.award(ctx, e.tasks, amount)
}

// award must be called with e.mu held. The new state is committed only
// after it has been persisted.
func (e *Engine) award(ctx context.Context, tasks []Task, amount int) ([]Badge, error) {
	total := e.points + amount

	badges := slices.Clone(e.badges)
	var unlocked []Badge
	for i := range badges {
		if !badges[i].Unlocked && total >= badges[i].PointsRequired {
			badges[i].Unlocked = true
			unlocked = append(unlocked, badges[i])
		}
	}

	if err := e.persist(ctx, total, tasks, badges); err != nil {
		return nil, err
	}

	e.points = total
	e.tasks = tasks
	e.badges = badges
	for _, b := range unlocked {
		e.logger.Info("badge unlocked", "badge", b.Name, "tier", b.Tier)
	}
	return unlocked, nil
}

func (e *Engine) Points() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.points
}

// Level is recomputed from the current points on every call.
func (e *Engine) Level() int {
	return LevelFor(e.Points())
}

func (e *Engine) LevelProgress() LevelProgress {
	points := e.Points()
	level := LevelFor(points)
	return LevelProgress{
		Level:           level,
		PointsIntoLevel: points % PointsPerLevel,
		NextLevelAt:     level * PointsPerLevel,
	}
}

func (e *Engine) Tasks() []Task {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.tasks)
}

func (e *Engine) Task(id string) (Task, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, t := range e.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

func (e *Engine) Badges() []Badge {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.badges)
}

// BadgeProgress reports the percentage of the badge threshold reached, capped at 100.
func (e *Engine) BadgeProgress(id string) (float64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, b := range e.badges {
		if b.ID != id {
			continue
		}
		if b.Unlocked || b.PointsRequired <= 0 {
			return 100, nil
		}
		return min(float64(e.points)/float64(b.PointsRequired)*100, 100), nil
	}
	return 0, fmt.Errorf("%w: %s", ErrBadgeNotFound, id)
}

type progress struct {
	Points         int      `json:"points"`
	CompletedTasks []string `json:"completed_tasks"`
	UnlockedBadges []string `json:"unlocked_badges"`
}

func (e *Engine) persist(ctx context.Context, points int, tasks []Task, badges []Badge) error {
	if e.store == nil {
		return nil
	}

	p := progress{Points: points, CompletedTasks: []string{}, UnlockedBadges: []string{}}
	for _, t := range tasks {
		if t.Completed {
			p.CompletedTasks = append(p.CompletedTasks, t.ID)
		}
	}
	for _, b := range badges {
		if b.Unlocked {
			p.UnlockedBadges = append(p.UnlockedBadges, b.ID)
		}
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode game progress: %w", err)
	}
	if err := e.store.Set(ctx, storage.KeyGameProgress, string(data)); err != nil {
		return fmt.Errorf("failed to persist game progress: %w", err)
	}
	return nil
}

func (e *Engine) restore(raw string) error {
	var p progress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return err
	}
	if p.Points < 0 {
		return fmt.Errorf("negative points %d", p.Points)
	}

	for _, id := range p.CompletedTasks {
		idx := slices.IndexFunc(e.tasks, func(t Task) bool { return t.ID == id })
		if idx < 0 {
			return fmt.Errorf("unknown task %q", id)
		}
		e.tasks[idx].Completed = true
	}
	for _, id := range p.UnlockedBadges {
		idx := slices.IndexFunc(e.badges, func(b Badge) bool { return b.ID == id })
		if idx < 0 {
			return fmt.Errorf("unknown badge %q", id)
		}
		e.badges[idx].Unlocked = true
	}
	e.points = p.Points
	return nil
}
