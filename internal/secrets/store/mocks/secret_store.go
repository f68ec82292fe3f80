// Package mocks provides mock implementations for testing the secret store
// and its collaborators.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
)

// MockSecretRepository is a mock implementation of SecretRepository for testing.
type MockSecretRepository struct {
	mock.Mock
}

// Create mocks the Create method of SecretRepository.
func (m *MockSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	args := m.Called(ctx, secret)
	return args.Error(0)
}

// GetByID mocks the GetByID method of SecretRepository.
func (m *MockSecretRepository) GetByID(ctx context.Context, id uuid.UUID) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

// ListExpirable mocks the ListExpirable method of SecretRepository.
func (m *MockSecretRepository) ListExpirable(ctx context.Context) ([]*secretsDomain.Secret, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*secretsDomain.Secret), args.Error(1)
}

// MarkDeleted mocks the MarkDeleted method of SecretRepository.
func (m *MockSecretRepository) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSecretCache is a mock implementation of SecretCache for testing.
type MockSecretCache struct {
	mock.Mock
}

// Get mocks the Get method of SecretCache.
func (m *MockSecretCache) Get(ctx context.Context, id uuid.UUID) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

// Set mocks the Set method of SecretCache.
func (m *MockSecretCache) Set(ctx context.Context, secret secretsDomain.Secret) error {
	args := m.Called(ctx, secret)
	return args.Error(0)
}

// Delete mocks the Delete method of SecretCache.
func (m *MockSecretCache) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
