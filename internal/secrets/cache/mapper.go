// Package cache provides the Redis mirror of live secrets. The cache is an
// expiring copy of the durable row, keyed by secret id; the database stays
// authoritative.
package cache

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/onetime/internal/errors"
	"github.com/allisson/onetime/internal/secrets/domain"
)

// secretPayload is the JSON shape stored in Redis. Byte fields ride on the
// standard base64 encoding of []byte; ExpiresAt stays a pointer so the
// no-expiry case round-trips as an explicit null.
type secretPayload struct {
	ID             uuid.UUID  `json:"id"`
	Ciphertext     []byte     `json:"ciphertext"`
	PassphraseHash []byte     `json:"passphrase_hash"`
	CreatedAt      time.Time  `json:"created_at"`
	ExpiresAt      *time.Time `json:"expires_at"`
	IsDeleted      bool       `json:"is_deleted"`
}

func marshalSecret(secret domain.Secret) ([]byte, error) {
	data, err := json.Marshal(secretPayload{
		ID:             secret.ID,
		Ciphertext:     secret.Ciphertext,
		PassphraseHash: secret.PassphraseHash,
		CreatedAt:      secret.CreatedAt,
		ExpiresAt:      secret.ExpiresAt,
		IsDeleted:      secret.IsDeleted,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode cached secret")
	}

	return data, nil
}

func unmarshalSecret(data []byte) (domain.Secret, error) {
	var payload secretPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.Secret{}, errors.Wrap(err, "failed to decode cached secret")
	}

	return domain.Secret{
		ID:             payload.ID,
		Ciphertext:     payload.Ciphertext,
		PassphraseHash: payload.PassphraseHash,
		CreatedAt:      payload.CreatedAt,
		ExpiresAt:      payload.ExpiresAt,
		IsDeleted:      payload.IsDeleted,
	}, nil
}
