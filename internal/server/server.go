package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"reel/internal/config"
	"reel/internal/discovery"
	"reel/internal/logging"
)

// Options configures a Server.
type Options struct {
	LibraryDir  string
	Bind        string
	AllowOrigin string
	// CacheMaxAge is the Cache-Control max-age sent with tracks, in seconds.
	CacheMaxAge int
}

// OptionsFromConfig maps the [paths] and [server] sections onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		LibraryDir:  cfg.Paths.LibraryDir,
		Bind:        cfg.Server.Bind,
		AllowOrigin: cfg.Server.AllowOrigin,
		CacheMaxAge: cfg.Server.CacheMaxAge,
	}
}

// Server serves subtitle tracks and library listings.
type Server struct {
	opts      Options
	converter discovery.Converter
	logger    *slog.Logger
	router    chi.Router

	listener net.Listener
	server   *http.Server
}

// New builds a Server. A nil logger discards output.
func New(opts Options, converter discovery.Converter, logger *slog.Logger) *Server {
	s := &Server{
		opts:      opts,
		converter: converter,
		logger:    logging.NewComponentLogger(logger, "server"),
	}
	s.router = s.routes()
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID, middleware.RealIP, s.accessLog, middleware.Recoverer, s.cors, middleware.GetHead)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/videos", s.handleListVideos)
		r.Get("/videos/{id}", s.handleGetVideo)
		r.Get("/videos/{id}/subtitles", s.handleVideoSubtitles)
		r.Get("/subtitles/{filename}", s.handleSubtitle)
	})
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	bind := strings.TrimSpace(s.opts.Bind)
	if bind == "" {
		return errors.New("server bind address is empty")
	}
	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return fmt.Errorf("server listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("server listening",
		logging.String("address", listener.Addr().String()),
		logging.String("library_dir", s.opts.LibraryDir),
	)
	return nil
}

// Addr reports the bound listener address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down, waiting up to five seconds for in-flight requests.
func (s *Server) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
}
