package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedRecipe is a bookmark edge between a user and a recipe. A pair is
// stored at most once.
type SavedRecipe struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_saved_recipes_user_recipe" json:"userId"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_saved_recipes_user_recipe;index" json:"recipeId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *SavedRecipe) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// All lists every model in dependency order for schema migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Recipe{},
		&Review{},
		&SavedRecipe{},
	}
}
