package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chef-fest/backend/internal/middleware"
	"github.com/chef-fest/backend/internal/service"
	"github.com/chef-fest/backend/internal/types"
)

type ReviewHandler struct {
	reviews service.IReviewService
	tokens  middleware.TokenValidator
	limiter *middleware.RateLimiter
}

func NewReviewHandler(reviews service.IReviewService, tokens middleware.TokenValidator, limiter *middleware.RateLimiter) *ReviewHandler {
	return &ReviewHandler{
		reviews: reviews,
		tokens:  tokens,
		limiter: limiter,
	}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.tokens)

	router.GET("/reviews/:recipeId", h.ListReviews)
	router.POST("/reviews", auth, h.limiter.RateLimitMiddleware(), h.CreateReview)
	router.DELETE("/reviews/:id", auth, middleware.RequireAdmin(), h.DeleteReview)
	router.GET("/all-reviews", auth, middleware.RequireAdmin(), h.ListAllReviews)
}

// ListReviews returns a recipe's reviews. Reading also reconciles the
// recipe's stored rating with the reviews returned.
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	recipeID, ok := uuidParam(c, "recipeId")
	if !ok {
		return
	}

	reviews, err := h.reviews.ListForRecipe(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err, "Failed to fetch reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) ListAllReviews(c *gin.Context) {
	reviews, err := h.reviews.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// CreateReview posts a review as the signed-in user.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	review, err := h.reviews.CreateReview(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "Failed to create review")
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.reviews.DeleteReview(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete review")
		return
	}
	success(c)
}
