package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chef-fest/backend/internal/models"
	"github.com/chef-fest/backend/internal/service"
	"github.com/chef-fest/backend/internal/testhelpers"
	"github.com/chef-fest/backend/internal/types"
)

func TestUserService_UpsertCreatesAndRefreshes(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewUserService(db)
	ctx := context.Background()
	id := uuid.New()

	created, err := svc.UpsertUser(ctx, &types.UpsertUserRequest{
		ID:        id,
		Email:     "Ada@Example.com",
		Name:      "Ada",
		AvatarURL: ptr("https://images.example.com/ada.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
	assert.Equal(t, "ada@example.com", created.Email)

	// Warm the cache, then refresh through upsert.
	_, err = svc.GetUser(ctx, id)
	require.NoError(t, err)

	refreshed, err := svc.UpsertUser(ctx, &types.UpsertUserRequest{
		ID:    id,
		Email: "ada@example.com",
		Name:  "Ada Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", refreshed.Name)
	require.NotNil(t, refreshed.AvatarURL)
	assert.Equal(t, "https://images.example.com/ada.png", *refreshed.AvatarURL)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserService_UpsertHashesPassword(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewUserService(db)

	user, err := svc.UpsertUser(context.Background(), &types.UpsertUserRequest{
		Email:    "grace@example.com",
		Name:     "Grace",
		Password: ptr("hopper123"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	require.NotNil(t, stored.PasswordHash)
	assert.NotEqual(t, "hopper123", *stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("hopper123")))
}

func TestUserService_UpsertDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewUserService(db)
	ctx := context.Background()

	_, err := svc.UpsertUser(ctx, &types.UpsertUserRequest{ID: uuid.New(), Email: "dup@example.com", Name: "First"})
	require.NoError(t, err)

	_, err = svc.UpsertUser(ctx, &types.UpsertUserRequest{ID: uuid.New(), Email: "DUP@example.com", Name: "Second"})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestUserService_UpsertValidation(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewUserService(db)
	ctx := context.Background()

	for _, req := range []*types.UpsertUserRequest{
		{Email: "not-an-email", Name: "Valid"},
		{Email: "ok@example.com", Name: "A"},
		{Email: "ok@example.com", Name: "Valid", Password: ptr("short")},
		{Email: "ok@example.com", Name: "Valid", AvatarURL: ptr("not a url")},
	} {
		_, err := svc.UpsertUser(ctx, req)
		assert.ErrorIs(t, err, service.ErrValidation)
	}
}

func TestUserService_UpdateUserInvalidatesCache(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewUserService(db)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db, "Before")

	cached, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Before", cached.Name)

	updated, err := svc.UpdateUser(ctx, user.ID, &types.UpdateUserRequest{Name: ptr("After")})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)

	fetched, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", fetched.Name)

	_, err = svc.UpdateUser(ctx, user.ID, &types.UpdateUserRequest{Name: ptr("X")})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.UpdateUser(ctx, uuid.New(), &types.UpdateUserRequest{Name: ptr("Nobody")})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUserService_DeleteUserRecomputesRatings(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	users := service.NewUserService(db)
	reviews := service.NewReviewService(db)
	saved := service.NewSavedRecipeService(db)
	ctx := context.Background()

	leaving := testhelpers.CreateTestUser(t, db, "Leaving")
	staying := testhelpers.CreateTestUser(t, db, "Staying")
	recipe := testhelpers.CreateTestRecipe(t, db)

	_, err := reviews.CreateReview(ctx, leaving.ID, &types.CreateReviewRequest{RecipeID: recipe.ID, Rating: 1, Text: "No"})
	require.NoError(t, err)
	_, err = reviews.CreateReview(ctx, staying.ID, &types.CreateReviewRequest{RecipeID: recipe.ID, Rating: 5, Text: "Yes"})
	require.NoError(t, err)
	_, err = saved.Add(ctx, leaving.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, reloadRecipe(t, db, recipe.ID).Rating)

	_, err = users.GetUser(ctx, leaving.ID)
	require.NoError(t, err)
	require.NoError(t, users.DeleteUser(ctx, leaving.ID))

	_, err = users.GetUser(ctx, leaving.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	got := reloadRecipe(t, db, recipe.ID)
	assert.Equal(t, 5.0, got.Rating)
	assert.Equal(t, int64(1), got.ReviewCount)

	exists, err := saved.Exists(ctx, leaving.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, users.DeleteUser(ctx, leaving.ID), service.ErrNotFound)
}
