package service

import (
	"context"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/onetime/internal/errors"
	"github.com/allisson/onetime/internal/worker"
)

// Argon2PassphraseHasher implements PassphraseHasher using Argon2id.
//
// The produced hash is a PHC-formatted string: salt and cost parameters are
// embedded, so Verify never depends on process-global configuration and old
// hashes stay verifiable if the policy is ever tuned. Verification is
// constant-time with respect to the mismatch position.
type Argon2PassphraseHasher struct {
	hasher *pwdhash.PasswordHasher
	pool   *worker.Pool
}

// NewArgon2PassphraseHasher creates a PassphraseHasher using the interactive
// Argon2id policy, a balance suited to per-request verification.
func NewArgon2PassphraseHasher(pool *worker.Pool) *Argon2PassphraseHasher {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyInteractive),
	)
	if err != nil {
		// This should never happen with a valid built-in policy
		panic(err)
	}

	return &Argon2PassphraseHasher{hasher: hasher, pool: pool}
}

// Hash hashes a raw passphrase on the worker pool.
func (a *Argon2PassphraseHasher) Hash(ctx context.Context, raw string) ([]byte, error) {
	var (
		hashed  string
		hashErr error
	)

	if err := a.pool.Run(ctx, func() {
		hashed, hashErr = a.hasher.Hash([]byte(raw))
	}); err != nil {
		return nil, apperrors.Wrap(err, "failed to schedule passphrase hashing")
	}
	if hashErr != nil {
		return nil, apperrors.Wrap(hashErr, "failed to hash passphrase")
	}

	return []byte(hashed), nil
}

// Verify compares a raw passphrase against a stored hash on the worker pool.
// A malformed stored hash reports as a mismatch rather than an error: the
// caller only ever needs a yes/no answer.
func (a *Argon2PassphraseHasher) Verify(ctx context.Context, raw string, hash []byte) (bool, error) {
	var (
		ok        bool
		verifyErr error
	)

	if err := a.pool.Run(ctx, func() {
		ok, verifyErr = a.hasher.Verify([]byte(raw), string(hash))
	}); err != nil {
		return false, apperrors.Wrap(err, "failed to schedule passphrase verification")
	}
	if verifyErr != nil {
		return false, nil
	}

	return ok, nil
}
