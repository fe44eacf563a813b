package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Macros represents nutrition information for a generated recipe.
type Macros struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
}

// Recipe is the structure a generated recipe is expected to follow. The
// generation gateway is trusted structurally: a field the model omits simply
// stays at its zero value.
type Recipe struct {
	Name         string   `json:"name"`
	CookingTime  int      `json:"cookingTime"`
	Difficulty   string   `json:"difficulty"`
	Servings     int      `json:"servings"`
	Macros       Macros   `json:"macros"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// RecipeJSON is a custom type for storing a recipe as an opaque JSONB blob.
// The stored bytes are passed through untouched so a saved recipe reads back
// exactly as it was written.
type RecipeJSON json.RawMessage

// Value implements the driver.Valuer interface
func (r RecipeJSON) Value() (driver.Value, error) {
	if len(r) == 0 {
		return nil, nil
	}
	if !json.Valid(r) {
		return nil, fmt.Errorf("recipe data is not valid JSON")
	}
	return string(r), nil
}

// Scan implements the sql.Scanner interface
func (r *RecipeJSON) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*r = append((*r)[0:0], v...)
	case string:
		*r = RecipeJSON(v)
	default:
		return fmt.Errorf("unsupported type for recipe data: %T", value)
	}
	return nil
}

// MarshalJSON writes the stored bytes verbatim
func (r RecipeJSON) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON keeps the incoming bytes verbatim
func (r *RecipeJSON) UnmarshalJSON(data []byte) error {
	if r == nil {
		return fmt.Errorf("RecipeJSON: UnmarshalJSON on nil pointer")
	}
	*r = append((*r)[0:0], data...)
	return nil
}
