package types

import "github.com/google/uuid"

// CreateRecipeRequest is the body of POST /api/recipes.
type CreateRecipeRequest struct {
	Title         string   `json:"title" validate:"required,notblank,max=255"`
	Description   string   `json:"description" validate:"required,notblank"`
	ImageURL      string   `json:"imageUrl" validate:"required,notblank,max=512"`
	Ingredients   []string `json:"ingredients" validate:"required,min=1,dive,notblank"`
	Steps         []string `json:"steps" validate:"required,min=1,dive,notblank"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	Category      string   `json:"category" validate:"required,notblank,max=50"`
	IsVegetarian  bool     `json:"isVegetarian"`
	IsTrending    bool     `json:"isTrending"`
	IsRecommended bool     `json:"isRecommended"`
}

// UpdateRecipeRequest is a partial update; nil fields are left unchanged.
type UpdateRecipeRequest struct {
	Title         *string   `json:"title" validate:"omitnil,notblank,max=255"`
	Description   *string   `json:"description" validate:"omitnil,notblank"`
	ImageURL      *string   `json:"imageUrl" validate:"omitnil,notblank,max=512"`
	Ingredients   *[]string `json:"ingredients" validate:"omitnil,min=1,dive,notblank"`
	Steps         *[]string `json:"steps" validate:"omitnil,min=1,dive,notblank"`
	Price         *float64  `json:"price" validate:"omitnil,gte=0"`
	Category      *string   `json:"category" validate:"omitnil,notblank,max=50"`
	IsVegetarian  *bool     `json:"isVegetarian"`
	IsTrending    *bool     `json:"isTrending"`
	IsRecommended *bool     `json:"isRecommended"`
}

// CreateReviewRequest is the body of POST /api/reviews. The author is the
// signed-in user.
type CreateReviewRequest struct {
	RecipeID uuid.UUID `json:"recipeId" validate:"required"`
	Rating   int       `json:"rating" validate:"required,min=1,max=5"`
	Text     string    `json:"text" validate:"required,notblank"`
}

// SaveRecipeRequest is the body of POST /api/saved-recipes.
type SaveRecipeRequest struct {
	UserID   uuid.UUID `json:"userId" validate:"required"`
	RecipeID uuid.UUID `json:"recipeId" validate:"required"`
}

// UpsertUserRequest creates or refreshes a profile after sign-up.
type UpsertUserRequest struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email" validate:"required,email"`
	Name      string    `json:"name" validate:"required,min=2,max=100"`
	AvatarURL *string   `json:"avatarUrl" validate:"omitempty,url"`
	Password  *string   `json:"password" validate:"omitempty,min=6,max=72"`
}

// UpdateUserRequest is a partial profile update.
type UpdateUserRequest struct {
	Name      *string `json:"name" validate:"omitnil,min=2,max=100"`
	AvatarURL *string `json:"avatarUrl" validate:"omitnil,url"`
}

// ContactRequest is the body of POST /api/contact.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}
