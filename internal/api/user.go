package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chef-fest/backend/internal/middleware"
	"github.com/chef-fest/backend/internal/service"
	"github.com/chef-fest/backend/internal/types"
)

type UserHandler struct {
	users  service.IUserService
	images service.IImageService
	tokens middleware.TokenValidator
}

func NewUserHandler(users service.IUserService, images service.IImageService, tokens middleware.TokenValidator) *UserHandler {
	return &UserHandler{
		users:  users,
		images: images,
		tokens: tokens,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users", middleware.AuthMiddleware(h.tokens))
	{
		users.POST("", h.UpsertUser)
		users.GET("", middleware.RequireAdmin(), h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PATCH("/:id", h.UpdateUser)
		users.DELETE("/:id", middleware.RequireAdmin(), h.DeleteUser)
		users.POST("/:id/avatar", h.UploadAvatar)
	}
}

// UpsertUser syncs the caller's profile after sign-up. The profile id is
// the token subject; only admins may upsert other users.
func (h *UserHandler) UpsertUser(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !claims.IsAdmin || req.ID == uuid.Nil {
		if req.ID != uuid.Nil && req.ID != claims.UserID {
			forbidden(c)
			return
		}
		req.ID = claims.UserID
	}

	user, err := h.users.UpsertUser(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to save user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.subjectParam(c)
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.subjectParam(c)
	if !ok {
		return
	}

	var req types.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user with their reviews and saved recipes.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	success(c)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	if h.images == nil {
		imagesDisabled(c)
		return
	}
	id, ok := h.subjectParam(c)
	if !ok {
		return
	}

	upload, file, ok := readUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	if _, err := h.images.UploadAvatar(ctx, id, upload); err != nil {
		respondError(c, err, "Failed to upload avatar")
		return
	}

	user, err := h.users.GetUser(ctx, id)
	if err != nil {
		respondError(c, err, "Failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// subjectParam reads :id and checks the caller is that user or an admin.
func (h *UserHandler) subjectParam(c *gin.Context) (uuid.UUID, bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return uuid.Nil, false
	}
	if !middleware.IsSelfOrAdmin(c, id) {
		forbidden(c)
		return uuid.Nil, false
	}
	return id, true
}
