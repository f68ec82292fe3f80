// Package store combines the durable secret repository with the Redis mirror.
// The database is authoritative; the cache is a best-effort expiring copy that
// only ever reflects rows already committed.
package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/onetime/internal/errors"
	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
)

// SecretRepository defines durable persistence operations for secrets.
type SecretRepository interface {
	Create(ctx context.Context, secret *secretsDomain.Secret) error
	GetByID(ctx context.Context, id uuid.UUID) (*secretsDomain.Secret, error)
	ListExpirable(ctx context.Context) ([]*secretsDomain.Secret, error)
	MarkDeleted(ctx context.Context, id uuid.UUID) error
}

// SecretCache defines the expiring mirror operations for secrets.
type SecretCache interface {
	Get(ctx context.Context, id uuid.UUID) (*secretsDomain.Secret, error)
	Set(ctx context.Context, secret secretsDomain.Secret) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SecretStore implements the cache-aside pattern over a repository and a cache.
type SecretStore struct {
	repository SecretRepository
	cache      SecretCache
	logger     *slog.Logger
}

// NewSecretStore creates a SecretStore.
func NewSecretStore(repository SecretRepository, cache SecretCache, logger *slog.Logger) *SecretStore {
	return &SecretStore{repository: repository, cache: cache, logger: logger}
}

// Save writes the secret durably. It joins any transaction carried by ctx;
// mirroring into the cache is a separate step so the cache only ever sees
// committed rows.
func (s *SecretStore) Save(ctx context.Context, secret *secretsDomain.Secret) error {
	return s.repository.Create(ctx, secret)
}

// Mirror copies a committed secret into the cache. A cache write failure is
// logged and swallowed: the durable row already exists and a later read falls
// through to the database.
func (s *SecretStore) Mirror(ctx context.Context, secret *secretsDomain.Secret) {
	if err := s.cache.Set(ctx, *secret); err != nil {
		s.logger.Warn("failed to mirror secret into cache", "secret_id", secret.ID, "error", err)
	}
}

// GetLive returns the secret for id if it is still reachable at the given
// instant. The cache is consulted first; a miss falls through to the database
// without repopulating the cache, so an entry evicted after a delete cannot be
// written back by a racing read. Deleted, expired, and absent secrets are all
// reported as ErrSecretNotFound.
func (s *SecretStore) GetLive(ctx context.Context, id uuid.UUID, now time.Time) (*secretsDomain.Secret, error) {
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		if !cached.IsLive(now) {
			return nil, secretsDomain.ErrSecretNotFound
		}
		return cached, nil
	}

	secret, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, secretsDomain.ErrSecretNotFound
		}
		return nil, err
	}
	if !secret.IsLive(now) {
		return nil, secretsDomain.ErrSecretNotFound
	}

	return secret, nil
}

// MarkDeleted soft-deletes the durable row, then evicts the cache entry
// unconditionally. Unlike Save, a cache failure here propagates: leaving a
// stale live copy behind would let a deleted secret keep serving reads until
// its TTL runs out.
func (s *SecretStore) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	if err := s.repository.MarkDeleted(ctx, id); err != nil {
		return err
	}

	return s.cache.Delete(ctx, id)
}

// ListExpirable returns all durable secrets carrying an expiry deadline.
func (s *SecretStore) ListExpirable(ctx context.Context) ([]*secretsDomain.Secret, error) {
	return s.repository.ListExpirable(ctx)
}
