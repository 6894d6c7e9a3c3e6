package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chef-fest/backend/internal/models"
	"github.com/chef-fest/backend/internal/types"
)

const (
	userCacheSize = 1024
	userCacheTTL  = 5 * time.Minute
)

// UserService manages profile rows. Lookups by id go through a small
// expiring LRU that every write invalidates.
type UserService struct {
	db    *gorm.DB
	cache *expirable.LRU[uuid.UUID, models.User]
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		db:    db,
		cache: expirable.NewLRU[uuid.UUID, models.User](userCacheSize, nil, userCacheTTL),
	}
}

// UpsertUser creates the profile for req.ID or refreshes its email and name.
// Avatar and password are only overwritten when supplied.
func (s *UserService) UpsertUser(ctx context.Context, req *types.UpsertUserRequest) (*models.User, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	user := models.User{
		ID:    req.ID,
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Name:  strings.TrimSpace(req.Name),
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	updateCols := []string{"email", "name", "updated_at"}
	if req.AvatarURL != nil && *req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
		updateCols = append(updateCols, "avatar_url")
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed := string(hash)
		user.PasswordHash = &hashed
		updateCols = append(updateCols, "password_hash")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.User{}).Where("email = ? AND id <> ?", user.Email, user.ID).Count(&taken).Error; err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if taken > 0 {
			return fmt.Errorf("email already registered: %w", ErrConflict)
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(updateCols),
		}).Create(&user).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("email already registered: %w", ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("failed to upsert user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Remove(user.ID)
	return s.GetUser(ctx, user.ID)
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if cached, ok := s.cache.Get(id); ok {
		return &cached, nil
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	s.cache.Add(id, user)
	return &user, nil
}

// ListUsers returns all users, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser changes the display name and avatar. Reviews keep the name
// they were written under.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req *types.UpdateUserRequest) (*models.User, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if len(updates) == 0 {
		return s.GetUser(ctx, id)
	}

	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}

	s.cache.Remove(id)
	return s.GetUser(ctx, id)
}

// SetAvatar points the user at a newly uploaded avatar.
func (s *UserService) SetAvatar(ctx context.Context, id uuid.UUID, avatarURL string) (*models.User, error) {
	return s.UpdateUser(ctx, id, &types.UpdateUserRequest{AvatarURL: &avatarURL})
}

// DeleteUser removes the user, their saved edges and their reviews, and
// recomputes the rating of every recipe they reviewed.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.User{}, id, "user"); err != nil {
			return err
		}
		if err := removeReviewsByUser(tx, id); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.SavedRecipe{}).Error; err != nil {
			return fmt.Errorf("failed to delete saved recipes: %w", err)
		}
		if err := tx.Delete(&models.User{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Remove(id)
	return nil
}
