// Package api exposes ingest/clear/analyze/plan/resample/pack as a small
// REST surface for a UI layer to call, backed by go-chi/chi/v5.
//
// One Server wraps one pipeline.Runner: ingest is additive across
// requests exactly as it is across CLI invocations, and analyze/plan
// answer from the runner's own report/plan cache.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/texrig/texrig/pkg/pipeline"
)

// Server holds the shared session state and dependencies for every route.
type Server struct {
	Runner *pipeline.Runner
	Logger *log.Logger
}

// New creates a Server around an existing runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Runner: runner, Logger: logger}
}

// Router builds the chi router exposing the six invoker commands.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.logRequests)

	r.Post("/ingest", s.handleIngest)
	r.Post("/clear", s.handleClear)
	r.Get("/analyze", s.handleAnalyze)
	r.Post("/plan", s.handlePlan)
	r.Post("/resample", s.handleResample)
	r.Post("/pack", s.handlePack)

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		s.Logger.Debugf("%s %s (%s)", req.Method, req.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}
