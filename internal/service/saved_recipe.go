package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chef-fest/backend/internal/metrics"
	"github.com/chef-fest/backend/internal/models"
)

// SavedRecipeService maintains the user to recipe bookmark relation. The
// (user_id, recipe_id) pair is unique, so saving twice is a no-op.
type SavedRecipeService struct {
	db *gorm.DB
}

func NewSavedRecipeService(db *gorm.DB) *SavedRecipeService {
	return &SavedRecipeService{db: db}
}

// Add saves recipeID for userID and returns the edge, existing or new.
func (s *SavedRecipeService) Add(ctx context.Context, userID, recipeID uuid.UUID) (*models.SavedRecipe, error) {
	var edge models.SavedRecipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.User{}, userID, "user"); err != nil {
			return err
		}
		if err := requireExists(tx, &models.Recipe{}, recipeID, "recipe"); err != nil {
			return err
		}

		edge = models.SavedRecipe{UserID: userID, RecipeID: recipeID}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoNothing: true,
		}).Create(&edge)
		if result.Error != nil {
			return fmt.Errorf("failed to save recipe: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			edge = models.SavedRecipe{}
			if err := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&edge).Error; err != nil {
				return fmt.Errorf("failed to load saved recipe: %w", err)
			}
			return nil
		}
		metrics.SavedRecipeChanges.WithLabelValues(metrics.ActionAdd).Inc()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

// Remove deletes the edge. Removing an edge that does not exist succeeds.
func (s *SavedRecipeService) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.SavedRecipe{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove saved recipe: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		metrics.SavedRecipeChanges.WithLabelValues(metrics.ActionRemove).Add(float64(result.RowsAffected))
	}
	return nil
}

// ListForUser returns the ids of the recipes userID saved, newest first.
func (s *SavedRecipeService) ListForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var edges []models.SavedRecipe
	err := s.db.WithContext(ctx).
		Select("recipe_id", "created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}

	ids := make([]uuid.UUID, len(edges))
	for i, e := range edges {
		ids[i] = e.RecipeID
	}
	return ids, nil
}

// Exists reports whether userID saved recipeID.
func (s *SavedRecipeService) Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.SavedRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check saved recipe: %w", err)
	}
	return count > 0, nil
}

// SavedRecipes materializes the user's saved list as full recipes, most
// recently saved first.
func (s *SavedRecipeService) SavedRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN saved_recipes ON saved_recipes.recipe_id = recipes.id").
		Where("saved_recipes.user_id = ?", userID).
		Order("saved_recipes.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load saved recipes: %w", err)
	}
	return recipes, nil
}

func requireExists(tx *gorm.DB, model interface{}, id uuid.UUID, what string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up %s: %w", what, err)
	}
	if count == 0 {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return nil
}
