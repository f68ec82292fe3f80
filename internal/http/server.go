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
	"github.com/redis/go-redis/v9"
	otelmetric "go.opentelemetry.io/otel/metric"

	eventsHTTP "github.com/allisson/onetime/internal/events/http"
	"github.com/allisson/onetime/internal/metrics"
	secretsHTTP "github.com/allisson/onetime/internal/secrets/http"
)

// ServerConfig carries the API server settings.
type ServerConfig struct {
	Host             string
	Port             int
	CORSEnabled      bool
	CORSAllowOrigins string
}

// Server is the public API server.
type Server struct {
	server      *http.Server
	router      *gin.Engine
	db          *sql.DB
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewServer creates the API server and wires all routes and middleware.
// meterProvider may be nil when metrics are disabled.
func NewServer(
	cfg ServerConfig,
	db *sql.DB,
	redisClient *redis.Client,
	secretHandler *secretsHTTP.SecretHandler,
	eventHandler *eventsHTTP.EventHandler,
	meterProvider otelmetric.MeterProvider,
	metricsScope string,
	logger *slog.Logger,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, metricsScope))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	s := &Server{
		router:      router,
		db:          db,
		redisClient: redisClient,
		logger:      logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	api := router.Group("/api")
	api.Use(NoCacheMiddleware())
	{
		api.POST("/secrets", secretHandler.CreateHandler)
		api.GET("/secrets/:id", secretHandler.ReadHandler)
		api.DELETE("/secrets/:id", secretHandler.DeleteHandler)
		api.GET("/events", eventHandler.ListHandler)
	}

	return s
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the API server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the backing services are reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	components := gin.H{"database": "ok", "cache": "ok"}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else if err := s.db.PingContext(ctx); err != nil {
		components["database"] = "error"
		ready = false
	}

	if s.redisClient == nil {
		components["cache"] = "error"
		ready = false
	} else if err := s.redisClient.Ping(ctx).Err(); err != nil {
		components["cache"] = "error"
		ready = false
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
