// Package api serves the HTTP surface used by dashboards to read and change guild settings.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"tagbot/pkg/settings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = time.Minute

	guildPrefix = "/{guild_id:[0-9]+}"
)

type Server struct {
	router     *mux.Router
	httpServer *http.Server
	settings   *settings.Repository
}

func NewServer(addr string, repo *settings.Repository) *Server {
	router := mux.NewRouter()
	s := &Server{
		router: router,
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		settings: repo,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(recovery, instrument)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// full templates on the root router, so a wrong method answers 405
	s.router.HandleFunc(guildPrefix+"/health", s.handleGuildHealth).Methods(http.MethodGet, http.MethodPost)
	s.router.HandleFunc(guildPrefix+"/settings/log-channel", s.handleSetLogChannel).Methods(http.MethodPost)
	s.router.HandleFunc(guildPrefix+"/settings/log-channel/{log_type}", s.handleGetLogChannel).Methods(http.MethodGet)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusNotFound, "endpoint not found")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}

// Handler returns the routed handler including all middleware.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("tagbot: starting the API", slog.String("http.addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("tagbot: shutting down the API")
	return s.httpServer.Shutdown(ctx)
}
