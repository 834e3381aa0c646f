// Package api exposes a Session as a JSON HTTP API. Operations are declared
// with huma on a chi router; /metrics and the OpenAPI document sit beside them.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	solace "github.com/unowned-ai/solace/pkg"
	"github.com/unowned-ai/solace/pkg/chat"
	"github.com/unowned-ai/solace/pkg/gamification"
	"github.com/unowned-ai/solace/pkg/metrics"
	"github.com/unowned-ai/solace/pkg/mood"
	"github.com/unowned-ai/solace/pkg/session"
)

// apiError renders as {"error": "..."}.
type apiError struct {
	status  int
	Message string `json:"error"`
}

func (e *apiError) GetStatus() int { return e.status }
func (e *apiError) Error() string  { return e.Message }

func newAPIError(status int, msg string, errs ...error) huma.StatusError {
	for _, err := range errs {
		if err != nil {
			msg += "; " + err.Error()
		}
	}
	return &apiError{status: status, Message: msg}
}

func init() {
	huma.NewError = newAPIError
}

// handleError maps domain errors to HTTP statuses.
func handleError(err error) huma.StatusError {
	switch {
	case errors.Is(err, mood.ErrUnknownMood),
		errors.Is(err, session.ErrEmptyNote),
		errors.Is(err, chat.ErrEmptyMessage):
		return newAPIError(http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrTaskNotFound),
		errors.Is(err, gamification.ErrBadgeNotFound):
		return newAPIError(http.StatusNotFound, err.Error())
	}
	return newAPIError(http.StatusInternalServerError, "internal error", err)
}

type Server struct {
	session *session.Session
	logger  *slog.Logger
}

func NewServer(s *session.Session, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{session: s, logger: logger}
}

// Handler returns the router with every route mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Handle("/metrics", promhttp.Handler())

	cfg := huma.DefaultConfig("Solace API", solace.Version)
	api := humachi.New(r, cfg)

	registerHealth(api)
	s.registerMood(api)
	s.registerJournal(api)
	s.registerGame(api)
	s.registerScore(api)
	s.registerChat(api)
	return r
}

// observe records request latency by route pattern and logs each request.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		metrics.HTTPRequestDuration.WithLabelValues(route, r.Method, strconv.Itoa(status)).Observe(elapsed.Seconds())
		s.logger.Debug("http request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http shutdown failed", "error", err)
		}
	}()

	s.logger.Info("serving http api", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "healthz",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body map[string]string
	}, error) {
		return &struct {
			Body map[string]string
		}{Body: map[string]string{"status": "ok", "version": solace.Version}}, nil
	})
}
