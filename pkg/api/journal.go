package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/unowned-ai/solace/pkg/journal"
	"github.com/unowned-ai/solace/pkg/mood"
)

type entriesOutput struct {
	Body []journal.Entry
}

type entryOutput struct {
	Body journal.Entry
}

func (s *Server) registerJournal(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-journal",
		Method:      http.MethodGet,
		Path:        "/api/journal",
		Summary:     "Journal entries, newest first",
	}, func(ctx context.Context, input *struct {
		Days int `query:"days" minimum:"0" doc:"Only entries from the last N days; 0 returns the whole journal"`
	}) (*entriesOutput, error) {
		if input.Days > 0 {
			return &entriesOutput{Body: s.session.Journal.EntriesForPeriod(input.Days)}, nil
		}
		return &entriesOutput{Body: s.session.Journal.Entries()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "add-journal-entry",
		Method:        http.MethodPost,
		Path:          "/api/journal",
		Summary:       "Add a journal entry",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		Body struct {
			Mood string `json:"mood,omitempty" doc:"Defaults to the current mood"`
			Note string `json:"note"`
		}
	}) (*entryOutput, error) {
		var m mood.Mood
		if input.Body.Mood != "" {
			parsed, err := mood.Parse(input.Body.Mood)
			if err != nil {
				return nil, handleError(err)
			}
			m = parsed
		}
		entry, err := s.session.AddEntry(ctx, m, input.Body.Note)
		if err != nil {
			return nil, handleError(err)
		}
		return &entryOutput{Body: entry}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "journal-trends",
		Method:      http.MethodGet,
		Path:        "/api/journal/trends",
		Summary:     "Entry count per mood",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body map[mood.Mood]int
	}, error) {
		return &struct {
			Body map[mood.Mood]int
		}{Body: s.session.Journal.MoodTrends()}, nil
	})
}
