// Package server exposes the reminder and email pipelines over HTTP for
// "nudge serve".
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nudgecli/nudge/common"
	"github.com/nudgecli/nudge/internal/email"
	"github.com/nudgecli/nudge/internal/osched"
	"github.com/nudgecli/nudge/internal/reminder"
	"github.com/nudgecli/nudge/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var errNotConfigured = errors.New("not configured")

// Deps are the collaborators behind the routes. A nil Scheduler makes the
// reminder routes answer 501; a nil Drafter or Sender makes the email
// routes answer 503.
type Deps struct {
	Scheduler osched.Adapter
	Parser    reminder.LLMParser
	Drafter   email.Drafter
	Sender    email.Sender
	Now       func() time.Time
	Log       logger.Logger
}

// Server serves the HTTP API.
type Server struct {
	deps   Deps
	log    logger.Logger
	router chi.Router
}

// New builds the router.
func New(deps Deps) *Server {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	s := &Server{deps: deps, log: logger.OrNop(deps.Log)}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/reminders", func(r chi.Router) {
		r.Post("/", s.createReminder)
		r.Delete("/{id}", s.cancelReminder)
	})

	r.Route("/api/email", func(r chi.Router) {
		r.Post("/", s.composeEmail)
		r.Post("/draft", s.draftEmail)
		r.Post("/send", s.sendEmail)
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve accepts connections on l until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server: listening on %s", l.Addr())
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("server: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

func (s *Server) scheduler() (osched.Adapter, error) {
	if s.deps.Scheduler == nil {
		return nil, &common.UnsupportedPlatformError{Platform: runtime.GOOS}
	}
	return s.deps.Scheduler, nil
}
