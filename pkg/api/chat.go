package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/unowned-ai/solace/pkg/chat"
)

type ExchangeView struct {
	User  chat.Message `json:"user"`
	Reply chat.Message `json:"reply"`
}

func (s *Server) registerChat(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-chat",
		Method:      http.MethodGet,
		Path:        "/api/chat",
		Summary:     "Chat transcript",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []chat.Message
	}, error) {
		return &struct {
			Body []chat.Message
		}{Body: s.session.Bot.Transcript().Messages()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "send-chat",
		Method:      http.MethodPost,
		Path:        "/api/chat",
		Summary:     "Send a message and wait for the reply",
		Errors:      []int{http.StatusBadRequest, http.StatusGatewayTimeout},
	}, func(ctx context.Context, input *struct {
		Body struct {
			Text string `json:"text"`
		}
	}) (*struct {
		Body ExchangeView
	}, error) {
		p, err := s.session.Chat(ctx, input.Body.Text)
		if err != nil {
			return nil, handleError(err)
		}

		select {
		case reply := <-p.Reply():
			return &struct {
				Body ExchangeView
			}{Body: ExchangeView{User: p.User, Reply: reply}}, nil
		case <-ctx.Done():
			return nil, newAPIError(http.StatusGatewayTimeout, "request ended before the reply arrived")
		}
	})
}
