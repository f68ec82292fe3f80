// Package mocks provides mock implementations for testing secret use cases
// and handlers.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	eventsDomain "github.com/allisson/onetime/internal/events/domain"
	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
	"github.com/allisson/onetime/internal/secrets/usecase"
)

// MockSecretUseCase is a mock implementation of SecretUseCase for testing.
type MockSecretUseCase struct {
	mock.Mock
}

// Create mocks the Create method of SecretUseCase.
func (m *MockSecretUseCase) Create(
	ctx context.Context,
	input usecase.CreateSecretInput,
	client usecase.ClientInfo,
) (uuid.UUID, error) {
	args := m.Called(ctx, input, client)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// ReadAndBurn mocks the ReadAndBurn method of SecretUseCase.
func (m *MockSecretUseCase) ReadAndBurn(
	ctx context.Context,
	id uuid.UUID,
	client usecase.ClientInfo,
) (string, error) {
	args := m.Called(ctx, id, client)
	return args.String(0), args.Error(1)
}

// Delete mocks the Delete method of SecretUseCase.
func (m *MockSecretUseCase) Delete(
	ctx context.Context,
	id uuid.UUID,
	passphrase string,
	client usecase.ClientInfo,
) error {
	args := m.Called(ctx, id, passphrase, client)
	return args.Error(0)
}

// ExpireSweep mocks the ExpireSweep method of SecretUseCase.
func (m *MockSecretUseCase) ExpireSweep(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockSecretStore is a mock implementation of SecretStore for testing.
type MockSecretStore struct {
	mock.Mock
}

// Save mocks the Save method of SecretStore.
func (m *MockSecretStore) Save(ctx context.Context, secret *secretsDomain.Secret) error {
	args := m.Called(ctx, secret)
	return args.Error(0)
}

// Mirror mocks the Mirror method of SecretStore.
func (m *MockSecretStore) Mirror(ctx context.Context, secret *secretsDomain.Secret) {
	m.Called(ctx, secret)
}

// GetLive mocks the GetLive method of SecretStore.
func (m *MockSecretStore) GetLive(ctx context.Context, id uuid.UUID, now time.Time) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, id, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

// MarkDeleted mocks the MarkDeleted method of SecretStore.
func (m *MockSecretStore) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ListExpirable mocks the ListExpirable method of SecretStore.
func (m *MockSecretStore) ListExpirable(ctx context.Context) ([]*secretsDomain.Secret, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*secretsDomain.Secret), args.Error(1)
}

// MockEncryptionService is a mock implementation of EncryptionService for testing.
type MockEncryptionService struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of EncryptionService.
func (m *MockEncryptionService) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Decrypt mocks the Decrypt method of EncryptionService.
func (m *MockEncryptionService) Decrypt(ctx context.Context, blob []byte) ([]byte, error) {
	args := m.Called(ctx, blob)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockPassphraseHasher is a mock implementation of PassphraseHasher for testing.
type MockPassphraseHasher struct {
	mock.Mock
}

// Hash mocks the Hash method of PassphraseHasher.
func (m *MockPassphraseHasher) Hash(ctx context.Context, raw string) ([]byte, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Verify mocks the Verify method of PassphraseHasher.
func (m *MockPassphraseHasher) Verify(ctx context.Context, raw string, hash []byte) (bool, error) {
	args := m.Called(ctx, raw, hash)
	return args.Bool(0), args.Error(1)
}

// MockEventRecorder is a mock implementation of EventRecorder for testing.
type MockEventRecorder struct {
	mock.Mock
}

// Record mocks the Record method of EventRecorder.
func (m *MockEventRecorder) Record(
	ctx context.Context,
	secretID uuid.UUID,
	eventType eventsDomain.EventType,
	clientIP, clientUserAgent string,
) error {
	args := m.Called(ctx, secretID, eventType, clientIP, clientUserAgent)
	return args.Error(0)
}
