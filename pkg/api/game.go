package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/unowned-ai/solace/pkg/gamification"
	"github.com/unowned-ai/solace/pkg/wellness"
)

type BadgeView struct {
	gamification.Badge
	Progress float64 `json:"progress"`
}

type ProgressView struct {
	Points   int                        `json:"points"`
	Progress gamification.LevelProgress `json:"level"`
}

type CompletionView struct {
	Task     gamification.Task    `json:"task"`
	Unlocked []gamification.Badge `json:"unlocked_badges"`
	Points   int                  `json:"points"`
	Level    int                  `json:"level"`
}

type ScoreView struct {
	wellness.Breakdown
	Message string `json:"message"`
}

func (s *Server) registerGame(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-tasks",
		Method:      http.MethodGet,
		Path:        "/api/tasks",
		Summary:     "Wellness tasks",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []gamification.Task
	}, error) {
		return &struct {
			Body []gamification.Task
		}{Body: s.session.Game.Tasks()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "complete-task",
		Method:      http.MethodPost,
		Path:        "/api/tasks/{id}/complete",
		Summary:     "Complete a task",
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		ID string `path:"id"`
	}) (*struct {
		Body CompletionView
	}, error) {
		task, unlocked, err := s.session.CompleteTask(ctx, input.ID)
		if err != nil {
			return nil, handleError(err)
		}
		if unlocked == nil {
			unlocked = []gamification.Badge{}
		}
		return &struct {
			Body CompletionView
		}{Body: CompletionView{
			Task:     task,
			Unlocked: unlocked,
			Points:   s.session.Game.Points(),
			Level:    s.session.Game.Level(),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-badges",
		Method:      http.MethodGet,
		Path:        "/api/badges",
		Summary:     "Badges with unlock progress",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []BadgeView
	}, error) {
		badges := s.session.Game.Badges()
		views := make([]BadgeView, 0, len(badges))
		for _, b := range badges {
			pct, err := s.session.Game.BadgeProgress(b.ID)
			if err != nil {
				return nil, handleError(err)
			}
			views = append(views, BadgeView{Badge: b, Progress: pct})
		}
		return &struct {
			Body []BadgeView
		}{Body: views}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-progress",
		Method:      http.MethodGet,
		Path:        "/api/progress",
		Summary:     "Points and level progress",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body ProgressView
	}, error) {
		return &struct {
			Body ProgressView
		}{Body: ProgressView{
			Points:   s.session.Game.Points(),
			Progress: s.session.Game.LevelProgress(),
		}}, nil
	})
}

func (s *Server) registerScore(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-score",
		Method:      http.MethodGet,
		Path:        "/api/score",
		Summary:     "Wellness score",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body ScoreView
	}, error) {
		b := s.session.Score()
		return &struct {
			Body ScoreView
		}{Body: ScoreView{Breakdown: b, Message: b.Band.Message()}}, nil
	})
}
