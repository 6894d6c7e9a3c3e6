package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/chef-fest/backend/internal/types"
)

const adminRole = "admin"

var ErrInvalidToken = errors.New("invalid token")

// TokenService verifies access tokens issued by the identity provider and
// decides whether the bearer is an administrator.
type TokenService struct {
	jwtSecret   []byte
	adminEmails map[string]struct{}
}

func NewTokenService(jwtSecret string, adminEmails []string) *TokenService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &TokenService{
		jwtSecret:   []byte(jwtSecret),
		adminEmails: admins,
	}
}

// ValidateToken checks the signature and expiry of tokenString and returns
// its claims with UserID and IsAdmin resolved.
func (s *TokenService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	claims.UserID = userID
	claims.IsAdmin = s.isAdmin(claims)

	return claims, nil
}

// GenerateToken signs claims with the shared secret. Production tokens come
// from the identity provider; this is used by tooling and tests.
func (s *TokenService) GenerateToken(claims *types.TokenClaims) (string, error) {
	if claims.Subject == "" && claims.UserID != uuid.Nil {
		claims.Subject = claims.UserID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *TokenService) isAdmin(claims *types.TokenClaims) bool {
	if claims.AppMetadata.Role == adminRole {
		return true
	}
	if claims.Email == "" {
		return false
	}
	_, ok := s.adminEmails[strings.ToLower(claims.Email)]
	return ok
}
