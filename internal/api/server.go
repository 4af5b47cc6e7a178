// Package api provides the HTTP API server and handlers for the Mealdex application.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/simonrowe/mealdex-server/internal/config"
	"github.com/simonrowe/mealdex-server/internal/store"
)

// Auth endpoints are the credential-guessing surface; everything else is
// bearer-protected and left unthrottled.
const (
	authRatePerMinute = 20
	authRateBurst     = 10
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	config          *config.Config
	store           store.Store
	services        *Services
	router          *chi.Mux
	api             huma.API
	httpServer      *http.Server
	logger          *slog.Logger
	authRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, st store.Store, services *Services, logger *slog.Logger) *Server {
	s := &Server{
		config:          cfg,
		store:           st,
		services:        services,
		router:          chi.NewRouter(),
		logger:          logger,
		authRateLimiter: NewRateLimiter(authRatePerMinute, time.Minute, authRateBurst),
	}

	s.setupMiddleware()
	s.setupAPI()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(RateLimitMiddleware(s.authRateLimiter, "/api/v1/auth/", s.logger))
}

// setupAPI creates the huma API and registers all routes.
func (s *Server) setupAPI() {
	humaConfig := huma.DefaultConfig("Mealdex API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerRecipeRoutes()
	s.registerTagRoutes()
	s.registerIngredientRoutes()
}

// Start begins serving HTTP requests. Blocks until the listener fails or
// Shutdown is called.
func (s *Server) Start() error {
	addr := ":" + s.config.Server.Port
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.logger.Info("HTTP server listening", "addr", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.authRateLimiter.Stop()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
