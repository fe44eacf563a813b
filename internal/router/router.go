package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pantrychef/backend/internal/api"
	"github.com/pantrychef/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	llmHandler *api.LLMHandler,
	savedRecipeHandler *api.SavedRecipeHandler,
	generationLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1)

	// Generation is public; the limiter is optional (nil when Redis is down)
	if generationLimiter != nil {
		llmHandler.RegisterRoutes(v1, generationLimiter.RateLimitMiddleware())
	} else {
		llmHandler.RegisterRoutes(v1)
	}

	savedRecipeHandler.RegisterRoutes(v1)

	return router
}
