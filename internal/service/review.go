package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chef-fest/backend/internal/logging"
	"github.com/chef-fest/backend/internal/metrics"
	"github.com/chef-fest/backend/internal/models"
	"github.com/chef-fest/backend/internal/rating"
	"github.com/chef-fest/backend/internal/types"
)

// ReviewService writes reviews and keeps each recipe's rating equal to the
// mean of its reviews. Every review mutation and the matching rating write
// commit in one transaction.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// CreateReview stores a review by authorID. The author's current display
// name is copied onto the review.
func (s *ReviewService) CreateReview(ctx context.Context, authorID uuid.UUID, req *types.CreateReviewRequest) (*models.Review, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var review *models.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var author models.User
		if err := tx.Select("id", "name").First(&author, "id = ?", authorID).Error; err != nil {
			return notFound(err, "user")
		}

		review = &models.Review{
			UserID:   authorID,
			RecipeID: req.RecipeID,
			Rating:   req.Rating,
			Text:     req.Text,
			UserName: author.Name,
		}

		// Touch the recipe first so a missing recipe fails before the insert.
		if err := adjustRating(tx, req.RecipeID, int64(req.Rating), 1); err != nil {
			return err
		}
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ReviewsCreated.Inc()
	return review, nil
}

// DeleteReview removes a review and takes its stars out of the recipe's
// aggregate.
func (s *ReviewService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, "id = ?", id).Error; err != nil {
			return notFound(err, "review")
		}
		if err := tx.Delete(&review).Error; err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		err := adjustRating(tx, review.RecipeID, -int64(review.Rating), -1)
		if errors.Is(err, ErrNotFound) {
			// Orphaned review; nothing to recompute.
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}

	metrics.ReviewsDeleted.Inc()
	return nil
}

// ListForRecipe returns a recipe's reviews, newest first. The recipe's
// stored aggregate is checked against the listed reviews and rewritten if
// it has drifted.
func (s *ReviewService) ListForRecipe(ctx context.Context, recipeID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		q := tx.Select("id", "rating", "rating_total", "review_count")
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		recipeErr := q.First(&recipe, "id = ?", recipeID).Error
		if recipeErr != nil && !errors.Is(recipeErr, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load recipe: %w", recipeErr)
		}

		if err := tx.Where("recipe_id = ?", recipeID).Order("created_at DESC").Order("id").Find(&reviews).Error; err != nil {
			return fmt.Errorf("failed to list reviews: %w", err)
		}
		if recipeErr != nil {
			return nil
		}

		stars := make([]int, len(reviews))
		for i, r := range reviews {
			stars[i] = r.Rating
		}
		agg := rating.FromRatings(stars)
		if agg.Total == recipe.RatingTotal && agg.Count == recipe.ReviewCount && agg.Mean() == recipe.Rating {
			return nil
		}

		logging.Ctx(ctx).Warn().
			Str("recipe_id", recipeID.String()).
			Int64("stored_count", recipe.ReviewCount).
			Int64("actual_count", agg.Count).
			Msg("recipe rating drifted from reviews, reconciling")
		metrics.RatingReconciled.Inc()
		return writeAggregate(tx, recipeID, agg)
	})
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListAll returns every review, newest first.
func (s *ReviewService) ListAll(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// adjustRating shifts a recipe's running total and count atomically, then
// rewrites the mean from the post-update values. The UPDATE takes the row
// lock, so concurrent adjustments to the same recipe serialize.
func adjustRating(tx *gorm.DB, recipeID uuid.UUID, totalDelta, countDelta int64) error {
	result := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).Updates(map[string]interface{}{
		"rating_total": gorm.Expr("rating_total + ?", totalDelta),
		"review_count": gorm.Expr("review_count + ?", countDelta),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update recipe rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("recipe %w", ErrNotFound)
	}

	var agg struct {
		RatingTotal int64
		ReviewCount int64
	}
	if err := tx.Model(&models.Recipe{}).Select("rating_total", "review_count").Where("id = ?", recipeID).Scan(&agg).Error; err != nil {
		return fmt.Errorf("failed to read recipe rating: %w", err)
	}

	return writeAggregate(tx, recipeID, rating.Aggregate{Total: agg.RatingTotal, Count: agg.ReviewCount})
}

func writeAggregate(tx *gorm.DB, recipeID uuid.UUID, agg rating.Aggregate) error {
	if agg.Count <= 0 {
		agg = rating.Aggregate{}
	}
	err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).Updates(map[string]interface{}{
		"rating_total": agg.Total,
		"review_count": agg.Count,
		"rating":       agg.Mean(),
	}).Error
	if err != nil {
		return fmt.Errorf("failed to write recipe rating: %w", err)
	}
	return nil
}

// removeReviewsByUser deletes every review written by userID and takes each
// one out of its recipe's aggregate.
func removeReviewsByUser(tx *gorm.DB, userID uuid.UUID) error {
	var reviews []models.Review
	if err := tx.Where("user_id = ?", userID).Find(&reviews).Error; err != nil {
		return fmt.Errorf("failed to load user reviews: %w", err)
	}
	if len(reviews) == 0 {
		return nil
	}

	type delta struct{ total, count int64 }
	perRecipe := map[uuid.UUID]delta{}
	for _, r := range reviews {
		d := perRecipe[r.RecipeID]
		d.total -= int64(r.Rating)
		d.count--
		perRecipe[r.RecipeID] = d
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.Review{}).Error; err != nil {
		return fmt.Errorf("failed to delete user reviews: %w", err)
	}
	for recipeID, d := range perRecipe {
		if err := adjustRating(tx, recipeID, d.total, d.count); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	return nil
}
