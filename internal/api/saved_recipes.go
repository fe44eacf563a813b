package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pantrychef/backend/internal/middleware"
	"github.com/pantrychef/backend/internal/model"
	"github.com/pantrychef/backend/internal/service"
)

type SavedRecipeHandler struct {
	db           *gorm.DB
	authService  *service.AuthService
	imageService *service.ImageService
}

func NewSavedRecipeHandler(db *gorm.DB, authService *service.AuthService, imageService *service.ImageService) *SavedRecipeHandler {
	return &SavedRecipeHandler{
		db:           db,
		authService:  authService,
		imageService: imageService,
	}
}

func (h *SavedRecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/saved-recipes")
	recipes.Use(middleware.AuthMiddleware(h.authService))
	{
		recipes.GET("", h.ListSavedRecipes)
		recipes.GET("/:id", h.GetSavedRecipe)
		recipes.POST("", h.SaveRecipe)
		recipes.DELETE("/:id", h.DeleteSavedRecipe)
		recipes.POST("/:id/favorite", h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", h.UnfavoriteRecipe)
		recipes.POST("/:id/photo", h.UploadDishPhoto)
	}
}

// userID pulls the authenticated user from the request context.
func userID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}

func (h *SavedRecipeHandler) ListSavedRecipes(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := h.db.Where("user_id = ?", uid)

	if c.Query("favorites") == "true" {
		query = query.Where("is_favorite = ?", true)
	}

	if search := c.Query("q"); search != "" {
		if h.db.Dialector.Name() == "postgres" {
			vec := service.GenerateEmbedding(search)
			query = query.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
		} else {
			like := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(recipe_name) LIKE ?", like)
		}
	}

	var recipes []model.SavedRecipe
	if err := query.Find(&recipes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch saved recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *SavedRecipeHandler) GetSavedRecipe(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var recipe model.SavedRecipe
	if err := h.db.First(&recipe, "id = ? AND user_id = ?", c.Param("id"), uid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

type SaveRecipeRequest struct {
	RecipeName string           `json:"recipe_name" binding:"required"`
	RecipeData model.RecipeJSON `json:"recipe_data" binding:"required"`
	IsFavorite bool             `json:"is_favorite"`
}

func (h *SavedRecipeHandler) SaveRecipe(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := model.SavedRecipe{
		ID:         uuid.New(),
		UserID:     uid,
		RecipeName: req.RecipeName,
		RecipeData: req.RecipeData,
		IsFavorite: req.IsFavorite,
		Embedding:  service.GenerateEmbedding(req.RecipeName),
	}

	if err := h.db.Create(&recipe).Error; err != nil {
		log.Printf("[SavedRecipeHandler] create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (h *SavedRecipeHandler) DeleteSavedRecipe(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	result := h.db.Delete(&model.SavedRecipe{}, "id = ? AND user_id = ?", c.Param("id"), uid)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
		"id":      c.Param("id"),
	})
}

func (h *SavedRecipeHandler) FavoriteRecipe(c *gin.Context) {
	h.setFavorite(c, true)
}

func (h *SavedRecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	h.setFavorite(c, false)
}

func (h *SavedRecipeHandler) setFavorite(c *gin.Context, favorite bool) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	result := h.db.Model(&model.SavedRecipe{}).
		Where("id = ? AND user_id = ?", c.Param("id"), uid).
		Update("is_favorite", favorite)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          c.Param("id"),
		"is_favorite": favorite,
	})
}

func (h *SavedRecipeHandler) UploadDishPhoto(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Photo storage is not configured"})
		return
	}

	var recipe model.SavedRecipe
	if err := h.db.First(&recipe, "id = ? AND user_id = ?", c.Param("id"), uid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read photo"})
		return
	}
	defer file.Close()

	url, err := h.imageService.UploadDishPhoto(c.Request.Context(), recipe.ID, fileHeader.Filename, file)
	if err != nil {
		log.Printf("[SavedRecipeHandler] photo upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo"})
		return
	}

	if err := h.db.Model(&recipe).Update("photo_url", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}
