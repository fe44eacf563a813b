package model

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
)

// SavedRecipe is a recipe a user chose to keep. The recipe payload itself is
// stored as an opaque JSONB blob; rows are hard-deleted, and every access is
// scoped to the owning user.
type SavedRecipe struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	RecipeName string          `gorm:"size:255;not null" json:"recipe_name"`
	RecipeData RecipeJSON      `gorm:"type:jsonb;not null" json:"recipe_data"`
	IsFavorite bool            `gorm:"not null;default:false" json:"is_favorite"`
	PhotoURL   string          `gorm:"size:255" json:"photo_url"`
	Embedding  pgvector.Vector `gorm:"type:vector(3)" json:"-"`
}

func (SavedRecipe) TableName() string {
	return "saved_recipes"
}
