package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chef-fest/backend/internal/filter"
	"github.com/chef-fest/backend/internal/metrics"
	"github.com/chef-fest/backend/internal/middleware"
	"github.com/chef-fest/backend/internal/service"
	"github.com/chef-fest/backend/internal/types"
)

type RecipeHandler struct {
	recipes service.IRecipeService
	images  service.IImageService
	tokens  middleware.TokenValidator
}

// NewRecipeHandler wires the catalog endpoints. images may be nil when
// object storage is not configured.
func NewRecipeHandler(recipes service.IRecipeService, images service.IImageService, tokens middleware.TokenValidator) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		images:  images,
		tokens:  tokens,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)

		admin := recipes.Group("", middleware.AuthMiddleware(h.tokens), middleware.RequireAdmin())
		admin.POST("", h.CreateRecipe)
		admin.PATCH("/:id", h.UpdateRecipe)
		admin.DELETE("/:id", h.DeleteRecipe)
		admin.POST("/:id/image", h.UploadImage)
	}
}

// ListRecipes returns the catalog newest first, narrowed by any filter
// parameters on the query string.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	spec, err := filter.ParseSpec(c.Request.URL.Query())
	if err != nil {
		respondError(c, err, "Failed to fetch recipes")
		return
	}

	recipes, err := h.recipes.SearchRecipes(c.Request.Context(), spec)
	if err != nil {
		respondError(c, err, "Failed to fetch recipes")
		return
	}

	metrics.RecipeSearches.WithLabelValues(strconv.Itoa(spec.ActiveCount())).Inc()
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete recipe")
		return
	}
	success(c)
}

// UploadImage stores a new recipe image and returns the updated recipe.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		imagesDisabled(c)
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	upload, file, ok := readUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	if _, err := h.images.UploadRecipeImage(ctx, id, upload); err != nil {
		respondError(c, err, "Failed to upload image")
		return
	}

	recipe, err := h.recipes.GetRecipe(ctx, id)
	if err != nil {
		respondError(c, err, "Failed to fetch recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}
