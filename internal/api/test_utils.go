package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pantrychef/backend/internal/database"
	"github.com/pantrychef/backend/internal/middleware"
	"github.com/pantrychef/backend/internal/service"
)

const testJWTSecret = "test-secret"

// setupTestDB opens an in-memory SQLite database with the application schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := database.RunMigrations(db, ""); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// setupTestRouter wires the full route table against the test database
func setupTestRouter(t *testing.T, db *gorm.DB) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := service.NewAuthService(db, testJWTSecret)
	authHandler := NewAuthHandler(authService)
	llmHandler := NewLLMHandler()
	savedRecipeHandler := NewSavedRecipeHandler(db, authService, nil)

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	llmHandler.RegisterRoutes(v1)
	savedRecipeHandler.RegisterRoutes(v1)

	return r, authService
}

// createTestUserAndToken registers a user and returns a valid bearer token
func createTestUserAndToken(t *testing.T, authService *service.AuthService, email string) string {
	t.Helper()

	token, err := authService.Register("Test User", email, "password123")
	if err != nil {
		t.Fatalf("failed to register test user: %v", err)
	}
	return token
}

// doJSON issues a JSON request against the router and returns the recorder
func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
