// Package server exposes the cleaning engine and pipeline store over a
// JSON HTTP API. Routes mirror the original product surface: feature sets,
// their versions, and pipelines mutated by wholesale action-list
// replacement.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/thunderstroke325/mage-ai/internal/store"
	syncclient "github.com/thunderstroke325/mage-ai/internal/sync"
)

// Config holds the server dependencies.
type Config struct {
	Store  *store.Store
	Sync   *syncclient.Client
	APIKey string
	Host   string
	Port   int
	Logger *slog.Logger
}

// Server serves the feature-set and pipeline API.
type Server struct {
	store  *store.Store
	sync   *syncclient.Client
	apiKey string
	host   string
	port   int
	logger *slog.Logger
}

// NewServer creates a server from its dependencies.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:  cfg.Store,
		sync:   cfg.Sync,
		apiKey: cfg.APIKey,
		host:   cfg.Host,
		port:   cfg.Port,
		logger: logger,
	}
}

// Handler builds the route tree. Exposed for httptest-based tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"*"},
		}),
	)

	r.Post("/process", s.handleProcess)
	r.Route("/feature_sets", func(r chi.Router) {
		r.Get("/", s.handleFeatureSetList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleFeatureSetGet)
			r.Put("/", s.handleFeatureSetPut)
			r.Post("/downloads", s.handleFeatureSetDownload)
			r.Get("/versions/{version}", s.handleFeatureSetVersionGet)
		})
	})
	r.Route("/pipelines", func(r chi.Router) {
		r.Get("/", s.handlePipelineList)
		r.Get("/{id}", s.handlePipelineGet)
		r.Put("/{id}", s.handlePipelinePut)
	})
	return r
}

// Serve starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	s.logger.Info("starting server", "addr", fmt.Sprintf("http://%s", addr))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Debug("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
