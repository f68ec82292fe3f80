package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/allisson/onetime/internal/errors"
	"github.com/allisson/onetime/internal/secrets/domain"
)

const keyPrefix = "secret:"

// RedisSecretCache stores secrets in Redis under a fixed TTL.
type RedisSecretCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSecretCache creates a RedisSecretCache with the given entry TTL.
func NewRedisSecretCache(client *redis.Client, ttl time.Duration) *RedisSecretCache {
	return &RedisSecretCache{client: client, ttl: ttl}
}

// Get returns the cached secret for id, or nil when the key is absent. Redis
// expiry makes absence the common case; only transport failures are errors.
func (c *RedisSecretCache) Get(ctx context.Context, id uuid.UUID) (*domain.Secret, error) {
	data, err := c.client.Get(ctx, keyPrefix+id.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read secret from cache")
	}

	secret, err := unmarshalSecret(data)
	if err != nil {
		return nil, err
	}

	return &secret, nil
}

// Set writes the secret under the configured TTL.
func (c *RedisSecretCache) Set(ctx context.Context, secret domain.Secret) error {
	data, err := marshalSecret(secret)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, keyPrefix+secret.ID.String(), data, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to write secret to cache")
	}

	return nil
}

// Delete evicts the secret. Deleting an absent key is not an error.
func (c *RedisSecretCache) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, keyPrefix+id.String()).Err(); err != nil {
		return errors.Wrap(err, "failed to evict secret from cache")
	}

	return nil
}
