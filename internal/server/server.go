package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pantrychef/backend/config"
	"github.com/pantrychef/backend/internal/api"
	"github.com/pantrychef/backend/internal/database"
	"github.com/pantrychef/backend/internal/middleware"
	"github.com/pantrychef/backend/internal/router"
	"github.com/pantrychef/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New creates a new server instance and wires the application together.
// Redis and S3 are optional collaborators: the server still starts when they
// are unavailable, minus rate limiting and photo uploads.
func New(cfg *config.Config, db *gorm.DB, sqlDB *database.DB, redisClient *redis.Client, s3cfg *config.S3Config) *Server {
	authService := service.NewAuthService(db, cfg.JWTSecret)

	var imageService *service.ImageService
	if s3cfg != nil {
		imageService = service.NewImageService(s3cfg)
	}

	authHandler := api.NewAuthHandler(authService)
	llmHandler := api.NewLLMHandler()
	savedRecipeHandler := api.NewSavedRecipeHandler(db, authService, imageService)

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewGenerationRateLimiter(redisClient)
	}

	r := router.SetupRouter(authHandler, llmHandler, savedRecipeHandler, limiter)

	r.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if sqlDB != nil {
			if err := sqlDB.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
				return
			}
		}
		if redisClient != nil {
			if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
				status["redis"] = "unavailable"
			}
		}
		c.JSON(http.StatusOK, status)
	})

	return &Server{
		router: r,
		cfg:    cfg,
	}
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.router,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
