package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	eventsDomain "github.com/allisson/onetime/internal/events/domain"
	"github.com/allisson/onetime/internal/metrics"
)

// eventUseCaseWithMetrics decorates EventUseCase with metrics instrumentation.
type eventUseCaseWithMetrics struct {
	next    EventUseCase
	metrics metrics.BusinessMetrics
}

// NewEventUseCaseWithMetrics wraps an EventUseCase with metrics recording.
func NewEventUseCaseWithMetrics(useCase EventUseCase, m metrics.BusinessMetrics) EventUseCase {
	return &eventUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Record records metrics for event appends.
func (e *eventUseCaseWithMetrics) Record(
	ctx context.Context,
	secretID uuid.UUID,
	eventType eventsDomain.EventType,
	clientIP, clientUserAgent string,
) error {
	start := time.Now()
	err := e.next.Record(ctx, secretID, eventType, clientIP, clientUserAgent)

	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "events", "event_record", status)
	e.metrics.RecordDuration(ctx, "events", "event_record", time.Since(start), status)

	return err
}

// List records metrics for event listing.
func (e *eventUseCaseWithMetrics) List(ctx context.Context, page, pageSize int) ([]*eventsDomain.Event, error) {
	start := time.Now()
	events, err := e.next.List(ctx, page, pageSize)

	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "events", "event_list", status)
	e.metrics.RecordDuration(ctx, "events", "event_list", time.Since(start), status)

	return events, err
}
