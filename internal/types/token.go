package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AppMetadata carries provider-managed attributes of the signed-in user.
type AppMetadata struct {
	Role     string `json:"role,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// TokenClaims represents the claims in an access token issued by the
// identity provider. The subject is the user's id.
type TokenClaims struct {
	jwt.RegisteredClaims
	Email       string      `json:"email,omitempty"`
	AppMetadata AppMetadata `json:"app_metadata"`

	// Populated by the validator, never read from the token body.
	UserID  uuid.UUID `json:"-"`
	IsAdmin bool      `json:"-"`
}
