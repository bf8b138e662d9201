package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/recuperacasa/intake-api/internal/config"
	"github.com/recuperacasa/intake-api/internal/domain/form"
	"github.com/recuperacasa/intake-api/internal/handlers"
	"github.com/recuperacasa/intake-api/internal/intake"
	"github.com/recuperacasa/intake-api/internal/logger"
	"github.com/recuperacasa/intake-api/internal/mail"
	"github.com/recuperacasa/intake-api/internal/middleware"
	"github.com/recuperacasa/intake-api/internal/notify"
	"github.com/recuperacasa/intake-api/internal/storage/postgres"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	db         *gorm.DB
	sender     mail.Sender
}

// New creates a new server instance
func New(cfg *config.Config, db *gorm.DB, sender mail.Sender) *Server {
	return &Server{
		config: cfg,
		db:     db,
		sender: sender,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	router := s.setupRouter()

	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: router,

		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Get().Info("Starting HTTP server", "port", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.Get().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *gin.Engine {
	if s.config.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.BodySizeLimit(s.config.Upload.MaxBodySize))

	// The forms are hosted on separate static sites, so any origin may post.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	router.Use(cors.New(corsConfig))

	// Health checks: the platform probes "/", "/ping" is for operators.
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/ping", func(c *gin.Context) {
		if err := postgres.HealthCheck(s.db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	s.setupIntakeRoutes(router)

	return router
}

// setupIntakeRoutes wires one intake endpoint per form kind, all backed
// by the same pipeline.
func (s *Server) setupIntakeRoutes(router *gin.Engine) {
	repo := postgres.NewSubmissionRepository(s.db)
	dispatcher := notify.NewDispatcher(s.sender)
	pipeline := intake.NewPipeline(repo, dispatcher)

	for _, def := range form.Definitions() {
		handler := handlers.NewIntakeHandler(def, pipeline, s.config.Upload.MaxFileSize, s.config.Upload.MaxBodySize)
		router.POST(def.Path, handler.Handle)
	}
}
