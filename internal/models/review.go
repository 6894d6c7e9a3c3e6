package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is one user's star rating and comment on a recipe. UserName is
// captured from the author's profile when the review is written.
type Review struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"userId"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipeId"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	UserName  string    `gorm:"not null" json:"userName"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
