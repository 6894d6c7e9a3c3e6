package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a profile row keyed by the identity provider's subject id.
type User struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"not null" json:"name"`
	AvatarURL    *string   `gorm:"size:512" json:"avatarUrl"`
	PasswordHash *string   `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Reviews      []Review      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	SavedRecipes []SavedRecipe `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
