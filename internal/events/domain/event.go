// Package domain defines the audit event model. Events form an append-only
// trail of secret lifecycle operations and deliberately outlive the secrets
// they describe.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies the recorded operation.
type EventType string

// Event types for the secret lifecycle. Expiry by the background sweep is
// intentionally unrecorded.
const (
	EventTypeCreate EventType = "CREATE"
	EventTypeRead   EventType = "READ"
	EventTypeDelete EventType = "DELETE"
)

// Event records a single operation against a secret, with the client metadata
// captured at the HTTP edge.
type Event struct {
	ID              uuid.UUID
	SecretID        uuid.UUID
	Type            EventType
	ClientIP        string
	ClientUserAgent string
	CreatedAt       time.Time
}

// NewEvent builds an event with a fresh time-ordered id.
func NewEvent(secretID uuid.UUID, eventType EventType, clientIP, clientUserAgent string, now time.Time) (Event, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Event{}, err
	}

	return Event{
		ID:              id,
		SecretID:        secretID,
		Type:            eventType,
		ClientIP:        clientIP,
		ClientUserAgent: clientUserAgent,
		CreatedAt:       now.UTC(),
	}, nil
}
