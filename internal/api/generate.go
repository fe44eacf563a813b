package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrychef/backend/internal/service"
)

// LLMHandler handles recipe generation requests
type LLMHandler struct {
	llmService *service.LLMService
}

// NewLLMHandler creates a new LLMHandler instance. A missing upstream
// credential is not fatal for the process: the service is retried per request
// so the error surfaces on the request that needs it.
func NewLLMHandler() *LLMHandler {
	llmService, err := service.NewLLMService()
	if err != nil {
		log.Printf("[LLMHandler] LLM service unavailable: %v", err)
	}
	return &LLMHandler{llmService: llmService}
}

// RegisterRoutes registers the generation route
func (h *LLMHandler) RegisterRoutes(router *gin.RouterGroup, extra ...gin.HandlerFunc) {
	handlers := append(extra, h.GenerateRecipe)
	router.POST("/generate-recipe", handlers...)
}

type GenerateRecipeRequest struct {
	Ingredients []string `json:"ingredients"`
}

// GenerateRecipe proxies an ingredient list to the upstream gateway and
// returns the generated recipe in a {"recipe": ...} envelope.
func (h *LLMHandler) GenerateRecipe(c *gin.Context) {
	var req GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(req.Ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients are required"})
		return
	}

	svc := h.llmService
	if svc == nil {
		// Configuration may have been fixed since startup
		var err error
		svc, err = service.NewLLMService()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	recipe, err := svc.GenerateRecipe(c.Request.Context(), req.Ingredients)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Please try again later."})
		case errors.Is(err, service.ErrPaymentRequired):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment required. Please add credits to your workspace."})
		default:
			log.Printf("[LLMHandler] generation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recipe"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}
