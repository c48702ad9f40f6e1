// Package api serves the trading journal over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/internal/auth"
	"github.com/rustyeddy/tradejournal/journal"
)

// Server wires the journal store to HTTP handlers.
type Server struct {
	store    journal.Store
	sessions *auth.Sessions
	decoy    *auth.Decoy
	log      *zap.Logger
	metrics  *Metrics
	validate *validator.Validate

	bcryptCost int
	cfg        config.ServerConfig
	now        func() time.Time
}

// Option customises a Server.
type Option func(*Server)

// WithClock replaces time.Now, which decides the dashboard's default window.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithMetrics exposes collectors on /metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// NewServer builds a server from configuration.
func NewServer(cfg *config.Config, store journal.Store, log *zap.Logger, opts ...Option) *Server {
	s := &Server{
		store:      store,
		sessions:   auth.NewSessions(cfg.Auth.Secret, cfg.Auth.SessionTTL, cfg.Auth.CookieSecure),
		decoy:      auth.NewDecoy(cfg.Auth.BcryptCost),
		log:        log,
		validate:   newValidator(),
		bcryptCost: cfg.Auth.BcryptCost,
		cfg:        cfg.Server,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Routes returns the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/health", s.health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/sign-up", s.signUp)
			r.Post("/sign-in", s.signIn)
			r.Post("/sign-out", s.signOut)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(s.sessions, s.unauthorized))
			r.Get("/me", s.me)

			r.Route("/dashboard", func(r chi.Router) {
				r.Use(s.requireSubscription)

				r.Get("/", s.dashboard)
				r.Get("/calendar", s.calendar)
				r.Get("/calendar/{day}", s.calendarDay)

				r.Route("/trades", func(r chi.Router) {
					r.Get("/", s.listTrades)
					r.Post("/", s.createTrade)
					r.Get("/export.csv", s.exportTrades)
					r.Get("/{id}", s.getTrade)
					r.Put("/{id}", s.updateTrade)
					r.Delete("/{id}", s.deleteTrade)
				})
			})
		})
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", s.cfg.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down http server", zap.Duration("timeout", s.cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
