package domain

import (
	"github.com/allisson/onetime/internal/errors"
)

// Crypto-specific error definitions.
var (
	// ErrInvalidKeySize indicates the key is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.New("key must be exactly 32 bytes")

	// ErrUnsupportedAlgorithm indicates an unknown AEAD algorithm name.
	ErrUnsupportedAlgorithm = errors.New("unsupported encryption algorithm")

	// ErrMalformedCiphertext indicates the encrypted blob cannot be parsed
	// (bad base64 or shorter than a nonce).
	ErrMalformedCiphertext = errors.New("malformed ciphertext")

	// ErrDecryptionFailed indicates authentication failure on decrypt:
	// the blob was tampered with or encrypted under a different key.
	ErrDecryptionFailed = errors.New("decryption failed")
)
