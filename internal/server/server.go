// Package server exposes the student, matching, connection and event HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/udem-connect/campus-connect/internal/ai"
	"github.com/udem-connect/campus-connect/internal/filtering"
	"github.com/udem-connect/campus-connect/internal/store"
	"github.com/udem-connect/campus-connect/internal/student"
	"go.uber.org/zap"
)

const (
	ServiceName = "campus-connect"

	defaultAddress  = ":8000"
	shutdownTimeout = 10 * time.Second
)

// Matcher ranks candidates for a subject.
type Matcher interface {
	FindBestMatches(ctx context.Context, subject *student.Profile, candidates []*student.Profile, lang ai.Language) []ai.MatchResult
	Strategy() string
	Filters() *filtering.Filtering
}

type Options struct {
	Address     string
	CORSOrigins []string
	// RateLimit is the number of requests per minute allowed per client IP. Zero disables it.
	RateLimit int
	Version   string
	// IncludeInactive keeps deactivated students in the match candidate set.
	IncludeInactive bool

	Store   *store.Store
	Matcher Matcher
	Logger  *zap.Logger
	// Now is overridden in tests.
	Now func() time.Time
}

type Server struct {
	opts        Options
	students    *store.Collection
	connections *store.Collection
	events      *store.Collection
	matcher     Matcher
	logger      *zap.Logger
	now         func() time.Time
	handler     http.Handler

	// registerMu serialises the duplicate-name check with the insert.
	registerMu sync.Mutex
}

func New(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, errors.New("store is required")
	}
	if opts.Matcher == nil {
		return nil, errors.New("matcher is required")
	}
	if opts.Address == "" {
		opts.Address = defaultAddress
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.Version == "" {
		opts.Version = "unknown"
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Server{
		opts:        opts,
		students:    opts.Store.Collection(store.Students),
		connections: opts.Store.Collection(store.Connections),
		events:      opts.Store.Collection(store.Events),
		matcher:     opts.Matcher,
		logger:      logger,
		now:         now,
	}
	s.handler = s.routes()

	return s, nil
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{chimiddleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/", s.handleRoot)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if s.opts.RateLimit > 0 {
			r.Use(httprate.LimitByIP(s.opts.RateLimit, time.Minute))
		}

		r.Get("/health", s.handleHealth)

		r.Route("/students", func(r chi.Router) {
			r.Post("/register", s.handleRegisterStudent)
			r.Get("/", s.handleListStudents)
			r.Get("/matches/{name}", s.handleMatches)
			r.Get("/{name}", s.handleGetStudent)
			r.Delete("/{name}", s.handleDeleteStudent)
		})

		r.Get("/challenges/suggest/{name}", s.handleSuggestChallenges)

		r.Route("/connections", func(r chi.Router) {
			r.Post("/connect", s.handleConnect)
			r.Get("/{studentID}", s.handleListConnections)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", s.handleListEvents)
			r.Post("/", s.handleCreateEvent)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening",
			zap.String("address", s.opts.Address),
			zap.String("strategy", s.matcher.Strategy()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
