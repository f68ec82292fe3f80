package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/onetime/internal/errors"
	eventsDomain "github.com/allisson/onetime/internal/events/domain"
)

// eventUseCase implements EventUseCase over an append-only repository.
type eventUseCase struct {
	eventRepo EventRepository
}

// Record appends an event with a fresh UUIDv7 id and the current UTC time.
func (e *eventUseCase) Record(
	ctx context.Context,
	secretID uuid.UUID,
	eventType eventsDomain.EventType,
	clientIP, clientUserAgent string,
) error {
	event, err := eventsDomain.NewEvent(secretID, eventType, clientIP, clientUserAgent, time.Now())
	if err != nil {
		return apperrors.Wrap(err, "failed to build event")
	}

	if err := e.eventRepo.Create(ctx, &event); err != nil {
		return apperrors.Wrap(err, "failed to record event")
	}

	return nil
}

// List returns one page of the event trail in insertion order. The whole
// trail is fetched and sliced in memory; the trail is small and append-only,
// and offset pagination over a growing head would skip or duplicate entries.
func (e *eventUseCase) List(ctx context.Context, page, pageSize int) ([]*eventsDomain.Event, error) {
	events, err := e.eventRepo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list events")
	}

	start := (page - 1) * pageSize
	if start >= len(events) {
		return []*eventsDomain.Event{}, nil
	}

	end := start + pageSize
	if end > len(events) {
		end = len(events)
	}

	return events[start:end], nil
}

// NewEventUseCase creates a new EventUseCase with the provided repository.
func NewEventUseCase(eventRepo EventRepository) EventUseCase {
	return &eventUseCase{eventRepo: eventRepo}
}
