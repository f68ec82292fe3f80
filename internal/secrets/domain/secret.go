// Package domain defines the core domain models and types for one-time
// secrets. A secret is written once, read at most once (reading burns it), and
// may carry an expiry deadline after which it is unreachable.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Secret represents a single-use encrypted secret.
type Secret struct {
	// ID is the unique identifier handed back to the creator as the share link.
	ID uuid.UUID
	// Ciphertext is the encrypted payload blob (base64 of nonce plus sealed data).
	Ciphertext []byte
	// PassphraseHash is the Argon2id hash of the delete passphrase.
	PassphraseHash []byte `json:"-"`
	// CreatedAt is the UTC timestamp when the secret was stored.
	CreatedAt time.Time
	// ExpiresAt is the UTC deadline after which the secret is unreachable
	// (nil means the secret never expires on its own).
	ExpiresAt *time.Time
	// IsDeleted marks a burned, explicitly deleted, or swept secret. The flag
	// is terminal; rows are never flipped back.
	IsDeleted bool
}

// NewSecret builds a live secret. A non-positive ttlSeconds means no expiry.
func NewSecret(ciphertext, passphraseHash []byte, ttlSeconds int64, now time.Time) (Secret, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Secret{}, err
	}

	secret := Secret{
		ID:             id,
		Ciphertext:     ciphertext,
		PassphraseHash: passphraseHash,
		CreatedAt:      now.UTC(),
	}
	if ttlSeconds > 0 {
		expiresAt := now.UTC().Add(time.Duration(ttlSeconds) * time.Second)
		secret.ExpiresAt = &expiresAt
	}

	return secret, nil
}

// IsExpired reports whether the expiry deadline has passed. A secret with no
// deadline never expires.
func (s Secret) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && !s.ExpiresAt.After(now)
}

// IsLive reports whether the secret is still reachable: not deleted and not
// past its expiry deadline.
func (s Secret) IsLive(now time.Time) bool {
	return !s.IsDeleted && !s.IsExpired(now)
}
