// Package httpapi exposes an engine over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/footprint-tools/verb/internal/dispatchers"
	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/log"
)

// ActorHeader names the request header carrying the actor name. It is
// ignored unless the server was built WithTrustedActorHeader.
const ActorHeader = "X-Verb-Actor"

// Dispatcher runs a command line for an actor. *dispatchers.Engine
// satisfies it; the app wraps it to record history.
type Dispatcher interface {
	Dispatch(actor dispatchers.Actor, input string) (any, error)
}

// Server serves dispatch, suggestion and command listing endpoints.
type Server struct {
	engine       *dispatchers.Engine
	dispatcher   Dispatcher
	logger       domain.Logger
	defaultActor string
	trustHeader  bool
	addr         string
	server       *http.Server
	startedAt    time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithDispatcher routes POST /v1/dispatch through d instead of the engine.
func WithDispatcher(d Dispatcher) Option {
	return func(s *Server) { s.dispatcher = d }
}

// WithLogger sets the request logger.
func WithLogger(l domain.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithDefaultActor names the actor of every request, or of requests
// without an actor header when the header is trusted.
func WithDefaultActor(name string) Option {
	return func(s *Server) { s.defaultActor = name }
}

// WithTrustedActorHeader lets clients pick their actor through ActorHeader.
// Only use it behind a proxy that sets or strips the header.
func WithTrustedActorHeader() Option {
	return func(s *Server) { s.trustHeader = true }
}

// New creates a server for engine listening on addr.
func New(addr string, engine *dispatchers.Engine, opts ...Option) *Server {
	s := &Server{
		engine:       engine,
		dispatcher:   engine,
		logger:       log.NopLogger{},
		defaultActor: "anonymous",
		addr:         addr,
		startedAt:    time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	if l, ok := s.logger.(*log.Logger); ok {
		s.server.ErrorLog = stdlog.New(l.Writer(log.LevelError), "", 0)
	}

	s.logger.Info("http: listening on %s", s.addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("http: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/dispatch", s.handleDispatch)
		r.Get("/suggest", s.handleSuggest)
		r.Get("/commands", s.handleCommands)
		r.Get("/tokenize", s.handleTokenize)
	})

	return r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http: %s %s -> %d in %s (request %s)",
			r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}

func (s *Server) actor(r *http.Request) dispatchers.Actor {
	if name := r.Header.Get(ActorHeader); name != "" && s.trustHeader {
		return dispatchers.NamedActor(name)
	}
	return dispatchers.NamedActor(s.defaultActor)
}
