package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeJSONPassesBytesThrough(t *testing.T) {
	raw := `{"name":"Chicken Fried Rice","cookingTime":25,"difficulty":"Easy","servings":4,"macros":{"calories":520,"protein":32,"carbs":60,"fats":14},"ingredients":["1 chicken breast"],"instructions":["Cook"]}`

	var data RecipeJSON
	require.NoError(t, json.Unmarshal([]byte(raw), &data))

	// Database round trip keeps the bytes intact
	value, err := data.Value()
	require.NoError(t, err)

	var scanned RecipeJSON
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, raw, string(scanned))

	// And so does re-marshaling
	out, err := json.Marshal(scanned)
	require.NoError(t, err)
	assert.Equal(t, raw, string(out))
}

func TestRecipeJSONValueRejectsInvalidJSON(t *testing.T) {
	data := RecipeJSON(`{"name": broken`)
	_, err := data.Value()
	assert.Error(t, err)
}

func TestRecipeJSONScanNil(t *testing.T) {
	var data RecipeJSON
	require.NoError(t, data.Scan(nil))
	assert.Nil(t, []byte(data))
}

func TestRecipeDecodeToleratesMissingFields(t *testing.T) {
	// Structural trust: a recipe missing macros still parses, with zero values
	var recipe Recipe
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Toast","ingredients":["bread"]}`), &recipe))
	assert.Equal(t, "Toast", recipe.Name)
	assert.Equal(t, 0, recipe.Macros.Calories)
	assert.Empty(t, recipe.Instructions)
}
