// Package usecase implements business logic for one-time secrets: create,
// read-and-burn, passphrase-gated delete, and the expiry sweep. Use cases
// coordinate the store, the crypto services, and the event trail, and own the
// transaction boundaries.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	eventsDomain "github.com/allisson/onetime/internal/events/domain"
	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
)

// SecretStore defines the combined durable-plus-cache storage operations.
type SecretStore interface {
	Save(ctx context.Context, secret *secretsDomain.Secret) error
	Mirror(ctx context.Context, secret *secretsDomain.Secret)
	GetLive(ctx context.Context, id uuid.UUID, now time.Time) (*secretsDomain.Secret, error)
	MarkDeleted(ctx context.Context, id uuid.UUID) error
	ListExpirable(ctx context.Context) ([]*secretsDomain.Secret, error)
}

// EventRecorder appends audit events for secret operations.
type EventRecorder interface {
	Record(ctx context.Context, secretID uuid.UUID, eventType eventsDomain.EventType, clientIP, clientUserAgent string) error
}

// ClientInfo carries the client metadata captured at the HTTP edge.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// CreateSecretInput carries the fields for storing a new secret.
type CreateSecretInput struct {
	// Secret is the plaintext payload to protect.
	Secret string
	// Passphrase optionally gates explicit deletion. Empty means ungated.
	Passphrase string
	// TTLSeconds bounds the secret's lifetime. Zero means no expiry.
	TTLSeconds int64
}

// SecretUseCase defines the business operations on one-time secrets.
type SecretUseCase interface {
	// Create encrypts and stores a new secret, returning its share id.
	Create(ctx context.Context, input CreateSecretInput, client ClientInfo) (uuid.UUID, error)
	// ReadAndBurn returns the plaintext exactly once and consumes the secret.
	ReadAndBurn(ctx context.Context, id uuid.UUID, client ClientInfo) (string, error)
	// Delete removes a live secret, verifying the passphrase when one gates it.
	Delete(ctx context.Context, id uuid.UUID, passphrase string, client ClientInfo) error
	// ExpireSweep soft-deletes every secret past its deadline and returns the
	// number of secrets swept. Sweeps emit no events.
	ExpireSweep(ctx context.Context) (int, error)
}
