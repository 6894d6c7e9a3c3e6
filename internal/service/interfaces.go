package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/chef-fest/backend/internal/filter"
	"github.com/chef-fest/backend/internal/models"
	"github.com/chef-fest/backend/internal/types"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, req *types.CreateRecipeRequest) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	SearchRecipes(ctx context.Context, spec filter.Spec) ([]models.Recipe, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
}

// IReviewService defines the interface for review operations
type IReviewService interface {
	CreateReview(ctx context.Context, authorID uuid.UUID, req *types.CreateReviewRequest) (*models.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
	ListForRecipe(ctx context.Context, recipeID uuid.UUID) ([]models.Review, error)
	ListAll(ctx context.Context) ([]models.Review, error)
}

// ISavedRecipeService defines the interface for bookmark operations
type ISavedRecipeService interface {
	Add(ctx context.Context, userID, recipeID uuid.UUID) (*models.SavedRecipe, error)
	Remove(ctx context.Context, userID, recipeID uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	SavedRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
}

// IUserService defines the interface for user profile operations
type IUserService interface {
	UpsertUser(ctx context.Context, req *types.UpsertUserRequest) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *types.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// IImageService defines the interface for image uploads
type IImageService interface {
	UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, up Upload) (string, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, up Upload) (string, error)
}

// IEmailService defines the interface for email operations
type IEmailService interface {
	SendContact(ctx context.Context, req *types.ContactRequest) error
}

var (
	_ IRecipeService      = (*RecipeService)(nil)
	_ IReviewService      = (*ReviewService)(nil)
	_ ISavedRecipeService = (*SavedRecipeService)(nil)
	_ IUserService        = (*UserService)(nil)
	_ IImageService       = (*ImageService)(nil)
	_ IEmailService       = (*EmailService)(nil)
)
