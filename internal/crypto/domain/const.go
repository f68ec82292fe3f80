// Package domain defines cryptographic domain types and errors.
package domain

// Algorithm identifies an AEAD cipher.
type Algorithm string

// Supported AEAD algorithms.
const (
	AESGCM   Algorithm = "aes-gcm"
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// KeySize is the required key length in bytes for every supported algorithm.
const KeySize = 32

// ParseAlgorithm validates an algorithm name from configuration.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(name) {
	case AESGCM:
		return AESGCM, nil
	case ChaCha20:
		return ChaCha20, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}
