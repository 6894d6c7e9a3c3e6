package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chef-fest/backend/internal/filter"
	"github.com/chef-fest/backend/internal/models"
	"github.com/chef-fest/backend/internal/types"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe validates req and stores a new recipe with an empty rating.
func (s *RecipeService) CreateRecipe(ctx context.Context, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Ingredients:   models.StringList(req.Ingredients),
		Steps:         models.StringList(req.Steps),
		Price:         *req.Price,
		Category:      req.Category,
		IsVegetarian:  req.IsVegetarian,
		IsTrending:    req.IsTrending,
		IsRecommended: req.IsRecommended,
	}
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "recipe")
	}
	return &recipe, nil
}

// ListRecipes returns the whole catalog, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// SearchRecipes filters a snapshot of the catalog in memory. Order is that
// of ListRecipes.
func (s *RecipeService) SearchRecipes(ctx context.Context, spec filter.Spec) ([]models.Recipe, error) {
	recipes, err := s.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	if spec.Unconstrained() {
		return recipes, nil
	}
	return filter.Apply(recipes, spec), nil
}

// UpdateRecipe applies the supplied fields of req. The derived rating can
// not be changed here.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Ingredients != nil {
		updates["ingredients"] = models.StringList(*req.Ingredients)
	}
	if req.Steps != nil {
		updates["steps"] = models.StringList(*req.Steps)
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.IsVegetarian != nil {
		updates["is_vegetarian"] = *req.IsVegetarian
	}
	if req.IsTrending != nil {
		updates["is_trending"] = *req.IsTrending
	}
	if req.IsRecommended != nil {
		updates["is_recommended"] = *req.IsRecommended
	}

	if len(updates) == 0 {
		return s.GetRecipe(ctx, id)
	}

	result := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("recipe %w", ErrNotFound)
	}
	return s.GetRecipe(ctx, id)
}

// SetImage points the recipe at a newly uploaded image.
func (s *RecipeService) SetImage(ctx context.Context, id uuid.UUID, imageURL string) (*models.Recipe, error) {
	return s.UpdateRecipe(ctx, id, &types.UpdateRecipeRequest{ImageURL: &imageURL})
}

// DeleteRecipe removes a recipe together with its reviews and saved edges.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("failed to delete recipe reviews: %w", err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.SavedRecipe{}).Error; err != nil {
			return fmt.Errorf("failed to delete saved recipe edges: %w", err)
		}
		result := tx.Delete(&models.Recipe{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete recipe: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("recipe %w", ErrNotFound)
		}
		return nil
	})
}
