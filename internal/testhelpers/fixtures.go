package testhelpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chef-fest/backend/internal/models"
	"github.com/chef-fest/backend/internal/types"
)

// TestJWTSecret signs tokens minted by GenerateTestToken.
const TestJWTSecret = "test-jwt-secret"

// CreateTestUser creates a user named name with a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	id := uuid.New()
	user := &models.User{
		ID:    id,
		Name:  name,
		Email: fmt.Sprintf("user+%s@example.com", id),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestRecipe creates a recipe with sensible defaults. opts may adjust
// the recipe before it is stored.
func CreateTestRecipe(t *testing.T, db *gorm.DB, opts ...func(*models.Recipe)) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		Title:       "Test Recipe",
		Description: "A test recipe",
		ImageURL:    "https://images.example.com/test.jpg",
		Ingredients: models.StringList{"ingredient1", "ingredient2"},
		Steps:       models.StringList{"step1", "step2"},
		Price:       12.5,
		Category:    "Dinner",
	}
	for _, opt := range opts {
		opt(recipe)
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return recipe
}

// GenerateTestToken signs an access token for userID with TestJWTSecret.
func GenerateTestToken(t *testing.T, userID uuid.UUID, email string, admin bool) string {
	t.Helper()

	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: email,
	}
	if admin {
		claims.AppMetadata.Role = "admin"
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}
