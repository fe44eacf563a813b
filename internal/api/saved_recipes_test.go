package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveRecipe(t *testing.T, router *gin.Engine, token, name string, data json.RawMessage) string {
	t.Helper()

	w := doJSON(router, "POST", "/api/v1/saved-recipes", token, map[string]interface{}{
		"recipe_name": name,
		"recipe_data": data,
	})
	require.Equal(t, http.StatusCreated, w.Code, "save failed: %s", w.Body.String())

	var resp struct {
		Recipe struct {
			ID string `json:"id"`
		} `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Recipe.ID)
	return resp.Recipe.ID
}

var testRecipeData = json.RawMessage(`{"name":"Chicken Fried Rice","cookingTime":25,"difficulty":"Easy","servings":4,"macros":{"calories":520,"protein":32,"carbs":60,"fats":14},"ingredients":["1 chicken breast","2 cups rice"],"instructions":["Cook the rice","Fry the chicken"]}`)

func TestSaveAndGetRecipe(t *testing.T) {
	db := setupTestDB(t)
	router, authService := setupTestRouter(t, db)
	token := createTestUserAndToken(t, authService, "save@example.com")

	id := saveRecipe(t, router, token, "Chicken Fried Rice", testRecipeData)

	w := doJSON(router, "GET", "/api/v1/saved-recipes/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched struct {
		RecipeName string          `json:"recipe_name"`
		RecipeData json.RawMessage `json:"recipe_data"`
		IsFavorite bool            `json:"is_favorite"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "Chicken Fried Rice", fetched.RecipeName)
	assert.False(t, fetched.IsFavorite)

	// The stored blob reads back exactly as it was written
	assert.Equal(t, string(testRecipeData), string(fetched.RecipeData))
}

func TestListSavedRecipesFiltersByFavorite(t *testing.T) {
	db := setupTestDB(t)
	router, authService := setupTestRouter(t, db)
	token := createTestUserAndToken(t, authService, "list@example.com")

	plainID := saveRecipe(t, router, token, "Plain", testRecipeData)
	favID := saveRecipe(t, router, token, "Favorited", testRecipeData)

	w := doJSON(router, "POST", "/api/v1/saved-recipes/"+favID+"/favorite", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	listIDs := func(path string) []string {
		w := doJSON(router, "GET", path, token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Recipes []struct {
				ID string `json:"id"`
			} `json:"recipes"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		ids := make([]string, 0, len(resp.Recipes))
		for _, r := range resp.Recipes {
			ids = append(ids, r.ID)
		}
		return ids
	}

	all := listIDs("/api/v1/saved-recipes")
	assert.ElementsMatch(t, []string{plainID, favID}, all)

	favorites := listIDs("/api/v1/saved-recipes?favorites=true")
	assert.Equal(t, []string{favID}, favorites)
}

func TestUnfavoriteRecipe(t *testing.T) {
	db := setupTestDB(t)
	router, authService := setupTestRouter(t, db)
	token := createTestUserAndToken(t, authService, "unfav@example.com")

	id := saveRecipe(t, router, token, "Toggled", testRecipeData)

	w := doJSON(router, "POST", "/api/v1/saved-recipes/"+id+"/favorite", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "DELETE", "/api/v1/saved-recipes/"+id+"/favorite", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "GET", "/api/v1/saved-recipes/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched struct {
		IsFavorite bool `json:"is_favorite"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.False(t, fetched.IsFavorite)
}

func TestDeleteSavedRecipe(t *testing.T) {
	db := setupTestDB(t)
	router, authService := setupTestRouter(t, db)
	token := createTestUserAndToken(t, authService, "delete@example.com")

	id := saveRecipe(t, router, token, "Doomed", testRecipeData)

	w := doJSON(router, "DELETE", "/api/v1/saved-recipes/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "GET", "/api/v1/saved-recipes/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSavedRecipesAreOwnerScoped(t *testing.T) {
	db := setupTestDB(t)
	router, authService := setupTestRouter(t, db)
	ownerToken := createTestUserAndToken(t, authService, "owner@example.com")
	otherToken := createTestUserAndToken(t, authService, "other@example.com")

	id := saveRecipe(t, router, ownerToken, "Private", testRecipeData)

	// Another user cannot read, favorite, or delete the row
	w := doJSON(router, "GET", "/api/v1/saved-recipes/"+id, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, "POST", "/api/v1/saved-recipes/"+id+"/favorite", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, "DELETE", "/api/v1/saved-recipes/"+id, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// And their listing does not include it
	w = doJSON(router, "GET", "/api/v1/saved-recipes", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Recipes []struct {
			ID string `json:"id"`
		} `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Recipes)

	// The owner still sees it
	w = doJSON(router, "GET", "/api/v1/saved-recipes/"+id, ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSavedRecipesRequireAuth(t *testing.T) {
	db := setupTestDB(t)
	router, _ := setupTestRouter(t, db)

	w := doJSON(router, "GET", "/api/v1/saved-recipes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, "POST", "/api/v1/saved-recipes", "", map[string]interface{}{
		"recipe_name": "Nope",
		"recipe_data": testRecipeData,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSaveRecipeValidation(t *testing.T) {
	db := setupTestDB(t)
	router, authService := setupTestRouter(t, db)
	token := createTestUserAndToken(t, authService, "validate@example.com")

	// Missing recipe_data
	w := doJSON(router, "POST", "/api/v1/saved-recipes", token, map[string]interface{}{
		"recipe_name": "No data",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing recipe_name
	w = doJSON(router, "POST", "/api/v1/saved-recipes", token, map[string]interface{}{
		"recipe_data": testRecipeData,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchSavedRecipesByName(t *testing.T) {
	db := setupTestDB(t)
	router, authService := setupTestRouter(t, db)
	token := createTestUserAndToken(t, authService, "search@example.com")

	saveRecipe(t, router, token, "Chicken Fried Rice", testRecipeData)
	saveRecipe(t, router, token, "Beef Stew", testRecipeData)

	w := doJSON(router, "GET", "/api/v1/saved-recipes?q=chicken", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipes []struct {
			RecipeName string `json:"recipe_name"`
		} `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Chicken Fried Rice", resp.Recipes[0].RecipeName)
}
