package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shrinkr-app/shrinkr/internal/config"
	"github.com/shrinkr-app/shrinkr/internal/httpx"
	"github.com/shrinkr-app/shrinkr/internal/shortener"
)

// Server owns the HTTP listener and its route table.
type Server struct {
	config  *config.Config
	logger  *slog.Logger
	handler *shortener.Handler
	server  *http.Server
}

// New creates a Server. Start must be called to begin serving.
func New(cfg *config.Config, logger *slog.Logger, handler *shortener.Handler) *Server {
	return &Server{
		config:  cfg,
		logger:  logger,
		handler: handler,
	}
}

// Start runs the HTTP server and blocks until a shutdown signal
// arrives or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         net.JoinHostPort(s.config.Server.Host, s.config.Server.Port),
		Handler:      s.middleware(s.routes()),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("starting http server",
			"addr", s.server.Addr,
			"env", s.config.App.Environment,
		)
		serverErrors <- s.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		s.logger.Info("received shutdown signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			if closeErr := s.server.Close(); closeErr != nil {
				return fmt.Errorf("failed to close server: %w", closeErr)
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}

		s.logger.Info("server stopped gracefully")
		return nil
	}
}

// routes builds the route table. GET /{short_code} is a wildcard;
// more specific patterns like /x/health win over it, which is why the
// health endpoint lives under the /x/ prefix instead of /health.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /x/health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleRoot)

	mux.HandleFunc("POST /shorten", s.handler.Shorten)
	mux.HandleFunc("GET /{short_code}", s.handler.Redirect)
	mux.HandleFunc("PUT /update/{short_code}", s.handler.Update)
	mux.HandleFunc("DELETE /delete/{short_code}", s.handler.Delete)

	return mux
}

func (s *Server) middleware(handler http.Handler) http.Handler {
	return httpx.Chain(
		httpx.Recovery(s.logger), // outermost so nothing below escapes
		httpx.RequestID,
		httpx.Logger(s.logger),
		httpx.CORS(nil),
	)(handler)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "URL Shortener API",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": s.config.Observability.ServiceName,
		"version": s.config.Observability.ServiceVersion,
	})
}

// Shutdown stops the listener, forcing a close if the context deadline
// passes first.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	s.logger.Info("shutting down server")

	if err := s.server.Shutdown(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("shutdown timeout exceeded, forcing close")
			return s.server.Close()
		}
		return err
	}

	return nil
}
