// Package server exposes the derivation results and the birthday calendar
// over a localhost HTTP API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tartampluch/go-keepintouch/internal/calendar"
	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/engine"
	"github.com/tartampluch/go-keepintouch/internal/store"
)

// Server is the keepintouch HTTP API server.
type Server struct {
	db      *store.DB
	engine  *engine.Engine
	builder *calendar.Builder
	clock   engine.Clock
	router  chi.Router
	started time.Time
}

// New wires a Server. A nil clock defaults to the real one.
func New(db *store.DB, eng *engine.Engine, builder *calendar.Builder, clock engine.Clock) *Server {
	if clock == nil {
		clock = engine.RealClock{}
	}
	s := &Server{
		db:      db,
		engine:  eng,
		builder: builder,
		clock:   clock,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route(config.RouteAPI, func(r chi.Router) {
		r.Get(config.RouteHealth, s.handleHealth)
		r.Get(config.RouteTimeline, s.handleTimeline)
		r.Get(config.RouteBacklog, s.handleBacklog)
		r.Get(config.RouteFriends, s.handleListFriends)
		r.Post(config.RouteFriends, s.handleCreateFriend)
		r.Post(config.RouteFriends+"/{friendID}/interactions", s.handleLogInteraction)
	})
	r.Get(config.RouteCalendar, s.handleCalendar)
	r.Head(config.RouteCalendar, s.handleCalendar)

	s.router = r
}

// Start runs the HTTP server bound to localhost and blocks until the
// context is cancelled.
func (s *Server) Start(ctx context.Context, port string) error {
	if port == "" {
		return fmt.Errorf(config.ErrPortRequired)
	}
	if n, err := strconv.Atoi(port); err != nil || n < config.MinPort || n > config.MaxPort {
		return fmt.Errorf(config.ErrPortRange)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + port,
		Handler:      s,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, 1)
	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}
