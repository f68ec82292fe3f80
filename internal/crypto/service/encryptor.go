package service

import (
	"context"
	"encoding/base64"

	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
	apperrors "github.com/allisson/onetime/internal/errors"
	"github.com/allisson/onetime/internal/worker"
)

// Encryptor implements EncryptionService on top of an AEAD cipher.
//
// Blob layout: base64(nonce || ciphertext). The nonce prefix makes the blob
// self-describing, and base64 keeps it safe for text columns and the JSON
// cache encoding. AEAD sealing is length-preserving with an authentication
// tag, so arbitrary binary plaintexts (empty, NUL bytes, non-ASCII) round-trip
// exactly with no padding to strip.
//
// Both Encrypt and Decrypt run on the shared worker pool so a burst of
// requests cannot stall I/O-bound goroutines with CPU-bound cipher work.
type Encryptor struct {
	aead AEAD
	pool *worker.Pool
}

// NewEncryptor creates an Encryptor over the given cipher and worker pool.
func NewEncryptor(aead AEAD, pool *worker.Pool) *Encryptor {
	return &Encryptor{aead: aead, pool: pool}
}

// Encrypt seals plaintext under a fresh nonce and returns the storage blob.
func (e *Encryptor) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	var (
		ciphertext []byte
		nonce      []byte
		sealErr    error
	)

	if err := e.pool.Run(ctx, func() {
		ciphertext, nonce, sealErr = e.aead.Encrypt(plaintext, nil)
	}); err != nil {
		return nil, apperrors.Wrap(err, "failed to schedule encryption")
	}
	if sealErr != nil {
		return nil, sealErr
	}

	raw := make([]byte, 0, len(nonce)+len(ciphertext))
	raw = append(raw, nonce...)
	raw = append(raw, ciphertext...)

	blob := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(blob, raw)
	return blob, nil
}

// Decrypt recovers the plaintext from a blob produced by Encrypt.
func (e *Encryptor) Decrypt(ctx context.Context, blob []byte) ([]byte, error) {
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(blob)))
	n, err := base64.StdEncoding.Decode(raw, blob)
	if err != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrMalformedCiphertext, err.Error())
	}
	raw = raw[:n]

	nonceSize := e.aead.NonceSize()
	if len(raw) < nonceSize {
		return nil, cryptoDomain.ErrMalformedCiphertext
	}
	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]

	var (
		plaintext []byte
		openErr   error
	)

	if err := e.pool.Run(ctx, func() {
		plaintext, openErr = e.aead.Decrypt(ciphertext, nonce, nil)
	}); err != nil {
		return nil, apperrors.Wrap(err, "failed to schedule decryption")
	}
	if openErr != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrDecryptionFailed, openErr.Error())
	}

	return plaintext, nil
}
