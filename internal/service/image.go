package service

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/chef-fest/backend/config"
	"github.com/chef-fest/backend/internal/logging"
)

// MaxImageSize caps uploaded recipe images and avatars.
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageStore persists an object and returns its public URL.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// S3ImageStore writes images to an S3 bucket.
type S3ImageStore struct {
	s3Config *config.S3Config
}

func NewS3ImageStore(s3Config *config.S3Config) *S3ImageStore {
	return &S3ImageStore{s3Config: s3Config}
}

func (s *S3ImageStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return s.s3Config.ObjectURL(key), nil
}

// ImageService uploads recipe images and avatars and records their URLs.
type ImageService struct {
	store   ImageStore
	recipes *RecipeService
	users   *UserService
}

func NewImageService(store ImageStore, recipes *RecipeService, users *UserService) *ImageService {
	return &ImageService{store: store, recipes: recipes, users: users}
}

// Upload is one image file received from a client.
type Upload struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, up Upload) (string, error) {
	if _, err := s.recipes.GetRecipe(ctx, recipeID); err != nil {
		return "", err
	}
	url, err := s.put(ctx, path.Join("recipes", recipeID.String()), up)
	if err != nil {
		return "", err
	}
	if _, err := s.recipes.SetImage(ctx, recipeID, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *ImageService) UploadAvatar(ctx context.Context, userID uuid.UUID, up Upload) (string, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return "", err
	}
	url, err := s.put(ctx, path.Join("avatars", userID.String()), up)
	if err != nil {
		return "", err
	}
	if _, err := s.users.SetAvatar(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *ImageService) put(ctx context.Context, prefix string, up Upload) (string, error) {
	ext, ok := imageExtensions[up.ContentType]
	if !ok {
		return "", &ValidationError{Fields: []FieldError{{Field: "image", Rule: "content_type"}}}
	}
	if up.Size <= 0 || up.Size > MaxImageSize {
		return "", &ValidationError{Fields: []FieldError{{Field: "image", Rule: "max_size"}}}
	}

	key := path.Join(prefix, uuid.New().String()+ext)
	url, err := s.store.Put(ctx, key, up.ContentType, io.LimitReader(up.Body, MaxImageSize))
	if err != nil {
		return "", err
	}
	logging.Ctx(ctx).Info().Str("key", key).Msg("image uploaded")
	return url, nil
}
