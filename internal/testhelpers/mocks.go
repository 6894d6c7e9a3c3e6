package testhelpers

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/chef-fest/backend/internal/service"
	"github.com/chef-fest/backend/internal/types"
)

// MockTokenValidator is a mock token validator for testing
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

// MockMailer records outbound messages.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg service.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockImageStore is a mock image store for upload tests
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}
