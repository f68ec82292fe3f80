// Package service provides the cryptographic services used by the secret
// lifecycle: AEAD ciphers, the storage blob encoding, and passphrase hashing.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)

	// NonceSize returns the nonce length in bytes.
	NonceSize() int
}

// EncryptionService encrypts secret payloads into self-describing storage
// blobs and decrypts them back. Implementations must be safe for concurrent
// use with a shared key.
type EncryptionService interface {
	// Encrypt returns a text-safe blob containing everything Decrypt needs
	// to recover the plaintext (nonce included).
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)

	// Decrypt is the inverse of Encrypt. Returns ErrMalformedCiphertext or
	// ErrDecryptionFailed for blobs that cannot be recovered.
	Decrypt(ctx context.Context, blob []byte) ([]byte, error)
}

// PassphraseHasher hashes and verifies deletion passphrases with a slow,
// salted password hash.
type PassphraseHasher interface {
	// Hash returns a self-describing hash (salt and parameters embedded).
	Hash(ctx context.Context, raw string) ([]byte, error)

	// Verify reports whether raw matches the hash, in constant time with
	// respect to the mismatch position.
	Verify(ctx context.Context, raw string, hash []byte) (bool, error)
}

// AEADManager creates AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}
