// Package mocks provides mock implementations for testing event use cases
// and handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	eventsDomain "github.com/allisson/onetime/internal/events/domain"
)

// MockEventRepository is a mock implementation of EventRepository for testing.
type MockEventRepository struct {
	mock.Mock
}

// Create mocks the Create method of EventRepository.
func (m *MockEventRepository) Create(ctx context.Context, event *eventsDomain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// GetAll mocks the GetAll method of EventRepository.
func (m *MockEventRepository) GetAll(ctx context.Context) ([]*eventsDomain.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*eventsDomain.Event), args.Error(1)
}

// MockEventUseCase is a mock implementation of EventUseCase for testing.
type MockEventUseCase struct {
	mock.Mock
}

// Record mocks the Record method of EventUseCase.
func (m *MockEventUseCase) Record(
	ctx context.Context,
	secretID uuid.UUID,
	eventType eventsDomain.EventType,
	clientIP, clientUserAgent string,
) error {
	args := m.Called(ctx, secretID, eventType, clientIP, clientUserAgent)
	return args.Error(0)
}

// List mocks the List method of EventUseCase.
func (m *MockEventUseCase) List(ctx context.Context, page, pageSize int) ([]*eventsDomain.Event, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*eventsDomain.Event), args.Error(1)
}
