// ============================================================================
// krama - Javanese speech-level analyzer
// ============================================================================
//
// Package:     server
// Description: HTTP, WebSocket and gRPC front ends of the analysis service
// Author:      LearnWithSuryaa
// Created:     2026-10-13
// License:     MIT
// ============================================================================

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/LearnWithSuryaa/analyzer-app/internal/service"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/logging"
)

// Config holds HTTP server configuration
type Config struct {
	Host         string
	HTTPPort     int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORS         CORSConfig
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	Enabled        bool
	AllowedOrigins []string
	AllowedMethods []string
	MaxAge         int
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		HTTPPort:     8080,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			MaxAge:         300,
		},
	}
}

// HTTPServer serves the REST API, the WebSocket endpoint, health and metrics
type HTTPServer struct {
	httpServer *http.Server
	service    *service.Service
	logger     *logging.Logger
	config     Config
}

// NewHTTPServer creates the HTTP server for svc
func NewHTTPServer(cfg Config, svc *service.Service, logger *logging.Logger) *HTTPServer {
	if logger == nil {
		logger = logging.New("krama-http")
	}

	s := &HTTPServer{
		service: svc,
		logger:  logger,
		config:  cfg,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.HTTPPort),
		Handler:      s.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// Routes builds the router
func (s *HTTPServer) Routes() http.Handler {
	h := &handler{service: s.service, logger: s.logger}
	ws := newWebSocketHandler(s.service, s.logger)

	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(loggingMiddleware(s.logger, s.service))

	if s.config.CORS.Enabled {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.config.CORS.AllowedOrigins,
			AllowedMethods: s.config.CORS.AllowedMethods,
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         s.config.CORS.MaxAge,
		}))
	}

	router.Get("/health", h.health)
	router.Handle("/metrics", s.service.Metrics().Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", h.analyze)
		r.Post("/analyze/batch", h.analyzeBatch)
		r.Get("/analyze/ws", ws.ServeHTTP)

		r.Post("/tokenize", h.tokenize)

		r.Route("/history", func(r chi.Router) {
			r.Get("/", h.listHistory)
			r.Get("/stats", h.historyStats)
			r.Get("/{id}", h.getHistory)
		})

		r.Route("/lexicon", func(r chi.Router) {
			r.Get("/search", h.searchLexicon)
			r.Get("/stats", h.lexiconStats)
		})
	})

	return router
}

// loggingMiddleware logs each request and records it in the metrics
func loggingMiddleware(logger *logging.Logger, svc *service.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			svc.Metrics().ObserveHTTP(r.Method, route, status, time.Since(start))
			logger.Info("HTTP request",
				"request_id", chimiddleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration", time.Since(start),
			)
		})
	}
}

// Start listens on the configured address and serves until Shutdown
func (s *HTTPServer) Start() error {
	s.logger.Info("Starting HTTP server", "address", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Serve serves on an existing listener until Shutdown
func (s *HTTPServer) Serve(listener net.Listener) error {
	s.logger.Info("Starting HTTP server", "address", listener.Addr().String())
	err := s.httpServer.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Address returns the server address
func (s *HTTPServer) Address() string {
	return s.httpServer.Addr
}
