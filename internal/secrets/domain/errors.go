package domain

import (
	"github.com/allisson/onetime/internal/errors"
)

// Secret-specific error definitions.
var (
	// ErrSecretNotFound indicates no live secret exists for the given id. It
	// covers never-existed, expired, and already-consumed alike; callers must
	// not be able to tell those apart.
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")
	// ErrIncorrectPassphrase indicates the delete passphrase did not match.
	ErrIncorrectPassphrase = errors.Wrap(errors.ErrForbidden, "incorrect passphrase")
)
