// Package http provides HTTP server implementation and request handlers using Gin web framework.
// The server uses Clean Architecture principles with structured logging (slog) and graceful shutdown.
//
// This server uses Gin (github.com/gin-gonic/gin) for HTTP routing while maintaining
// compatibility with the application's existing patterns:
//   - Custom slog-based logging middleware (instead of Gin's default logger)
//   - Gin-compatible error handling utilities (httputil.HandleErrorGin)
//   - Manual http.Server configuration for timeout and graceful shutdown control
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	authHTTP "github.com/allisson/keywhiz-core/internal/auth/http"
	clientsHTTP "github.com/allisson/keywhiz-core/internal/clients/http"
	clientsUseCase "github.com/allisson/keywhiz-core/internal/clients/usecase"
	"github.com/allisson/keywhiz-core/internal/config"
	groupsHTTP "github.com/allisson/keywhiz-core/internal/groups/http"
	membershipHTTP "github.com/allisson/keywhiz-core/internal/membership/http"
	"github.com/allisson/keywhiz-core/internal/metrics"
	secretsHTTP "github.com/allisson/keywhiz-core/internal/secrets/http"
)

// Server represents the HTTP server.
type Server struct {
	db       *sql.DB
	server   *http.Server
	logger   *slog.Logger
	router   *gin.Engine
	reqGroup singleflight.Group
}

// NewServer creates a new HTTP server.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter configures the Gin router with all routes and middleware.
// This method is called during server initialization with all required dependencies.
func (s *Server) SetupRouter(
	cfg *config.Config,
	clientUseCase clientsUseCase.ClientUseCase,
	clientHandler *clientsHTTP.ClientHandler,
	groupHandler *groupsHTTP.GroupHandler,
	membershipHandler *membershipHTTP.MembershipHandler,
	secretHandler *secretsHTTP.SecretHandler,
	metricsProvider *metrics.Provider,
	metricsNamespace string,
) {
	// Create Gin engine without default middleware
	router := gin.New()

	// Apply custom middleware
	router.Use(gin.Recovery()) // Gin's panic recovery

	// Add CORS middleware if enabled
	if corsMiddleware := createCORSMiddleware(
		cfg.CORSEnabled,
		cfg.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	}))) // Request ID with UUIDv7
	router.Use(CustomLoggerMiddleware(s.logger)) // Custom slog logger

	// Add HTTP metrics middleware if metrics are enabled
	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsNamespace))
	}

	// Health and readiness endpoints (outside API versioning)
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Resolves every request's Principal (C8): an mTLS-CN-matched
	// AutomationClient, or an OperatorUser from X-Operator-User.
	authMiddleware := authHTTP.AuthenticationMiddleware(clientUseCase, s.logger)
	requireAutomation := authHTTP.RequireAutomationClient(s.logger)
	requireOperator := authHTTP.RequireOperatorUser(s.logger)

	// API v1 routes
	v1 := router.Group("/v1")
	v1.Use(authMiddleware)
	{
		// Secret management endpoints. Create/Delete/Get are
		// AutomationClient-only (spec.md §4.8); List serves both kinds,
		// scoped per-principal inside ListHandler.
		secrets := v1.Group("/secrets")
		{
			secrets.POST("/*name", requireAutomation, secretHandler.CreateHandler)
			secrets.GET("/*name", requireAutomation, secretHandler.GetHandler)
			secrets.DELETE("/*name", requireAutomation, secretHandler.DeleteHandler)
			secrets.GET("", secretHandler.ListHandler)
		}

		// ACL graph administration endpoints: OperatorUser only (spec.md
		// §4.8) — wiring clients/groups/memberships is a human admin action.
		clients := v1.Group("/clients")
		clients.Use(requireOperator)
		{
			clients.POST("", clientHandler.CreateHandler)
			clients.GET("", clientHandler.ListHandler)
			clients.GET("/:id", clientHandler.GetHandler)
			clients.DELETE("/:id", clientHandler.DeleteHandler)
		}

		groups := v1.Group("/groups")
		groups.Use(requireOperator)
		{
			groups.POST("", groupHandler.CreateHandler)
			groups.GET("", groupHandler.ListHandler)
			groups.GET("/:id", groupHandler.GetHandler)
			groups.DELETE("/:id", groupHandler.DeleteHandler)
		}

		memberships := v1.Group("/memberships")
		memberships.Use(requireOperator)
		{
			memberships.POST("/enroll", membershipHandler.EnrollHandler)
			memberships.POST("/evict", membershipHandler.EvictHandler)
			memberships.POST("/allow", membershipHandler.AllowHandler)
			memberships.POST("/disallow", membershipHandler.DisallowHandler)
		}
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
// Returns nil if SetupRouter has not been called yet.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	// Router must be set up before starting
	if s.router == nil {
		return fmt.Errorf("router not initialized - call SetupRouter first")
	}

	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler returns a simple health check response.
func (s *Server) healthHandler(c *gin.Context) {
	v, _, _ := s.reqGroup.Do("health", func() (interface{}, error) {
		return gin.H{"status": "healthy"}, nil
	})
	c.JSON(http.StatusOK, v)
}

type readinessResponse struct {
	StatusCode int
	Body       gin.H
}

// readinessHandler returns a simple readiness check response.
func (s *Server) readinessHandler(c *gin.Context) {
	v, _, _ := s.reqGroup.Do("readiness", func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		dbStatus := "ok"
		httpStatus := http.StatusOK

		if s.db == nil {
			s.logger.Error("readiness check failed: database not initialized")
			dbStatus = "error"
			httpStatus = http.StatusServiceUnavailable
		} else if err := s.db.PingContext(ctx); err != nil {
			s.logger.Error("readiness check failed: database ping error", slog.Any("err", err))
			dbStatus = "error"
			httpStatus = http.StatusServiceUnavailable
		}

		return readinessResponse{
			StatusCode: httpStatus,
			Body: gin.H{
				"status": map[int]string{
					http.StatusOK:                 "ready",
					http.StatusServiceUnavailable: "not_ready",
				}[httpStatus],
				"components": gin.H{
					"database": dbStatus,
				},
			},
		}, nil
	})

	res := v.(readinessResponse)
	c.JSON(res.StatusCode, res.Body)
}
