// Package usecase implements business logic for the audit event trail.
package usecase

import (
	"context"

	"github.com/google/uuid"

	eventsDomain "github.com/allisson/onetime/internal/events/domain"
)

// EventRepository defines append-only persistence operations for events.
type EventRepository interface {
	Create(ctx context.Context, event *eventsDomain.Event) error
	GetAll(ctx context.Context) ([]*eventsDomain.Event, error)
}

// EventUseCase defines business operations for the event trail.
type EventUseCase interface {
	// Record appends an event for an operation on a secret.
	Record(ctx context.Context, secretID uuid.UUID, eventType eventsDomain.EventType, clientIP, clientUserAgent string) error
	// List returns one page of the insertion-ordered event trail.
	List(ctx context.Context, page, pageSize int) ([]*eventsDomain.Event, error)
}
