// Package http hosts the gin API server, its middleware and the metrics server.
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

	cipherHTTP "github.com/allisson/reptend/internal/cipher/http"
	"github.com/allisson/reptend/internal/config"
	"github.com/allisson/reptend/internal/metrics"
)

const readinessTimeout = 2 * time.Second

// Server is the public API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger

	// stop ends background work started by SetupRouter, such as rate limiter cleanup.
	stop context.CancelFunc
}

// NewServer creates a server bound to host:port. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		stop:   func() {},
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// SetupRouter wires middleware and routes.
func (s *Server) SetupRouter(
	cfg *config.Config,
	cipherKeyHandler *cipherHTTP.CipherKeyHandler,
	cryptoHandler *cipherHTTP.CryptoHandler,
	primeHandler *cipherHTTP.PrimeHandler,
	metricsProvider *metrics.Provider,
) {
	gin.SetMode(cfg.GetGinMode())

	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cors := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); cors != nil {
		router.Use(cors)
	}

	if cfg.MetricsEnabled && metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	keys := v1.Group("/cipher/keys")
	{
		keys.POST("", cipherKeyHandler.CreateHandler)
		keys.GET("", cipherKeyHandler.ListHandler)
		keys.GET("/:name", cipherKeyHandler.GetHandler)
		keys.POST("/:name/rotate", cipherKeyHandler.RotateHandler)
		keys.DELETE("/:id", cipherKeyHandler.DeleteHandler)

		limited := keys.Group("", BodyLimitMiddleware(cfg.CipherMaxPlaintextBytes))
		limited.POST("/:name/encrypt", cryptoHandler.EncryptHandler)
		limited.POST("/:name/decrypt", cryptoHandler.DecryptHandler)
	}

	primes := v1.Group("/primes")
	{
		primes.POST("/generate", primeHandler.GenerateHandler)
		primes.POST("/check", primeHandler.CheckHandler)
	}

	// Prime generation may run up to CIPHER_PRIME_TIMEOUT before answering.
	if minWrite := cfg.CipherPrimeTimeout + 5*time.Second; s.server.WriteTimeout < minWrite {
		s.server.WriteTimeout = minWrite
	}

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the configured handler, for httptest servers.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start(ctx context.Context) error {
	if s.server.Handler == nil && s.router != nil {
		s.server.Handler = s.router
	}
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops background work.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	s.stop()
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only while the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	database := "ok"
	if s.db == nil {
		database = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			database = "error"
		}
	}

	if database != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": database},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": database},
	})
}
