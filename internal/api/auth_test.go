package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	router, _ := setupTestRouter(t, db)

	w := doJSON(router, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"name":     "Alex",
		"email":    "alex@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	// The issued token grants access to protected routes
	w = doJSON(router, "GET", "/api/v1/saved-recipes", resp.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Login with the same credentials
	w = doJSON(router, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "alex@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	router, _ := setupTestRouter(t, db)

	body := map[string]interface{}{
		"name":     "Alex",
		"email":    "dupe@example.com",
		"password": "password123",
	}

	w := doJSON(router, "POST", "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "POST", "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	router, authService := setupTestRouter(t, db)
	createTestUserAndToken(t, authService, "wrongpw@example.com")

	w := doJSON(router, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "wrongpw@example.com",
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, w.Body.String())
}

func TestRegisterValidation(t *testing.T) {
	db := setupTestDB(t)
	router, _ := setupTestRouter(t, db)

	// Short password
	w := doJSON(router, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"name":     "Alex",
		"email":    "short@example.com",
		"password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Invalid email
	w = doJSON(router, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"name":     "Alex",
		"email":    "not-an-email",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
