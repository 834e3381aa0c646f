package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/unowned-ai/solace/pkg/mood"
)

type MoodView struct {
	Mood  mood.Mood `json:"mood"`
	Emoji string    `json:"emoji"`
	Label string    `json:"label"`
}

func moodView(m mood.Mood) MoodView {
	return MoodView{Mood: m, Emoji: mood.Emoji(m), Label: mood.Label(m)}
}

type moodOutput struct {
	Body MoodView
}

func (s *Server) registerMood(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-mood",
		Method:      http.MethodGet,
		Path:        "/api/mood",
		Summary:     "Current mood",
	}, func(ctx context.Context, _ *struct{}) (*moodOutput, error) {
		return &moodOutput{Body: moodView(s.session.Mood.Current())}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "set-mood",
		Method:      http.MethodPut,
		Path:        "/api/mood",
		Summary:     "Set current mood",
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		Body struct {
			Mood string `json:"mood" doc:"One of happy, sad, anxious, calm, stressed, neutral"`
		}
	}) (*moodOutput, error) {
		m, err := mood.Parse(input.Body.Mood)
		if err != nil {
			return nil, handleError(err)
		}
		if err := s.session.SetMood(ctx, m); err != nil {
			return nil, handleError(err)
		}
		return &moodOutput{Body: moodView(m)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-moods",
		Method:      http.MethodGet,
		Path:        "/api/moods",
		Summary:     "Selectable moods",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []MoodView
	}, error) {
		all := mood.All()
		views := make([]MoodView, 0, len(all))
		for _, m := range all {
			views = append(views, moodView(m))
		}
		return &struct {
			Body []MoodView
		}{Body: views}, nil
	})
}
