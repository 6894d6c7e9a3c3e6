package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chef-fest/backend/internal/middleware"
	"github.com/chef-fest/backend/internal/service"
	"github.com/chef-fest/backend/internal/types"
)

type SavedRecipeHandler struct {
	saved  service.ISavedRecipeService
	tokens middleware.TokenValidator
}

func NewSavedRecipeHandler(saved service.ISavedRecipeService, tokens middleware.TokenValidator) *SavedRecipeHandler {
	return &SavedRecipeHandler{saved: saved, tokens: tokens}
}

func (h *SavedRecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	saved := router.Group("/saved-recipes", middleware.AuthMiddleware(h.tokens))
	{
		saved.GET("/:userId", h.ListSaved)
		saved.GET("/:userId/recipes", h.ListSavedRecipes)
		saved.POST("", h.SaveRecipe)
		saved.DELETE("/:userId/:recipeId", h.UnsaveRecipe)
	}
}

type savedRecipeEntry struct {
	RecipeID uuid.UUID `json:"recipeId"`
}

// ListSaved returns the ids of the user's saved recipes, newest first.
func (h *SavedRecipeHandler) ListSaved(c *gin.Context) {
	userID, ok := h.ownerParam(c)
	if !ok {
		return
	}

	ids, err := h.saved.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch saved recipes")
		return
	}

	entries := make([]savedRecipeEntry, len(ids))
	for i, id := range ids {
		entries[i] = savedRecipeEntry{RecipeID: id}
	}
	c.JSON(http.StatusOK, entries)
}

func (h *SavedRecipeHandler) ListSavedRecipes(c *gin.Context) {
	userID, ok := h.ownerParam(c)
	if !ok {
		return
	}

	recipes, err := h.saved.SavedRecipes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch saved recipes")
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// SaveRecipe bookmarks a recipe for the signed-in user. Saving twice
// returns the existing edge.
func (h *SavedRecipeHandler) SaveRecipe(c *gin.Context) {
	var req types.SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.UserID == uuid.Nil || req.RecipeID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and recipeId are required"})
		return
	}

	current, ok := middleware.CurrentUserID(c)
	if !ok || current != req.UserID {
		forbidden(c)
		return
	}

	edge, err := h.saved.Add(c.Request.Context(), req.UserID, req.RecipeID)
	if err != nil {
		respondError(c, err, "Failed to save recipe")
		return
	}
	c.JSON(http.StatusOK, edge)
}

func (h *SavedRecipeHandler) UnsaveRecipe(c *gin.Context) {
	userID, ok := h.ownerParam(c)
	if !ok {
		return
	}
	recipeID, ok := uuidParam(c, "recipeId")
	if !ok {
		return
	}

	if err := h.saved.Remove(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err, "Failed to remove saved recipe")
		return
	}
	success(c)
}

// ownerParam reads :userId and checks the caller may act for that user.
func (h *SavedRecipeHandler) ownerParam(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return uuid.Nil, false
	}
	if !middleware.IsSelfOrAdmin(c, userID) {
		forbidden(c)
		return uuid.Nil, false
	}
	return userID, true
}
