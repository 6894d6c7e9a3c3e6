package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is a catalog entry. Rating is derived from the recipe's reviews and
// is only written through the review service.
type Recipe struct {
	ID            uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `gorm:"type:text;not null" json:"description"`
	ImageURL      string     `gorm:"size:512;not null" json:"imageUrl"`
	Ingredients   StringList `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Steps         StringList `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
	Price         float64    `gorm:"not null" json:"price"`
	Category      string     `gorm:"size:50;not null;index" json:"category"`
	Rating        float64    `gorm:"not null;default:0" json:"rating"`
	RatingTotal   int64      `gorm:"not null;default:0" json:"-"`
	ReviewCount   int64      `gorm:"not null;default:0" json:"reviewCount"`
	IsVegetarian  bool       `gorm:"not null;default:false" json:"isVegetarian"`
	IsTrending    bool       `gorm:"not null;default:false" json:"isTrending"`
	IsRecommended bool       `gorm:"not null;default:false" json:"isRecommended"`
	CreatedAt     time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	Reviews []Review      `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	SavedBy []SavedRecipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
