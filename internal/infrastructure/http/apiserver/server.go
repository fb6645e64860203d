// Package apiserver assembles the chi router and HTTP server for the API.
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/recipesai/recipesai/internal/infrastructure/config"
	"github.com/recipesai/recipesai/internal/infrastructure/http/handlers"
	"github.com/recipesai/recipesai/internal/infrastructure/http/middleware"
	"github.com/recipesai/recipesai/internal/infrastructure/monitoring"
	"github.com/recipesai/recipesai/internal/infrastructure/security"
)

// Server wraps the HTTP server and its route configuration.
type Server struct {
	config     *config.Config
	logger     *zap.Logger
	httpServer *http.Server
}

// NewServer builds the router and returns a server ready to start.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authService *security.AuthService,
	metrics *monitoring.Metrics,
	authHandlers *handlers.AuthAPIHandlers,
	recipeHandlers *handlers.RecipeAPIHandlers,
	aiHandlers *handlers.AIAPIHandlers,
) *Server {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.JSONOnly())
	r.Use(metrics.Middleware())

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status":"healthy"}`)
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", authHandlers.Register)
		r.Post("/login", authHandlers.Login)
	})

	r.Route("/recipes", func(r chi.Router) {
		r.Use(middleware.Authenticate(authService))
		r.Get("/", recipeHandlers.List)
		r.Post("/", recipeHandlers.Create)
		r.Patch("/{id}", recipeHandlers.Update)
		r.Delete("/{id}", recipeHandlers.Delete)
	})

	// The AI endpoints take no bearer token; their only failure mode is a
	// missing field in the request body.
	r.Route("/ai", func(r chi.Router) {
		r.Post("/suggest", aiHandlers.Suggest)
		r.Post("/meal-plan", aiHandlers.MealPlan)
	})

	return &Server{
		config: cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      r,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Handler exposes the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins serving requests and blocks until the listener closes.
func (s *Server) Start() error {
	s.logger.Info("Starting API server", zap.String("address", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("API server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.httpServer.Shutdown(ctx)
}
