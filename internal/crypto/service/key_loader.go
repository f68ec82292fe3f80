package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
	apperrors "github.com/allisson/onetime/internal/errors"

	// Register KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KeyLoaderConfig selects where the data encryption key comes from.
type KeyLoaderConfig struct {
	// EncryptionKey is raw key material from the environment. It is run
	// through SHA-256 to produce the fixed-size cipher key.
	EncryptionKey string
	// KMSKeyURI, when set, takes precedence: KeyCiphertext is unwrapped
	// through the gocloud.dev keeper at this URI.
	KMSKeyURI string
	// KeyCiphertext is the base64 KMS-wrapped 32-byte key.
	KeyCiphertext string
}

// LoadKey resolves the 32-byte data encryption key.
//
// With a KMS URI configured the key never appears in the environment: only
// its wrapped form does, and the KMS unwraps it at boot. Without one, the key
// is derived from ENCRYPTION_KEY by SHA-256, which also normalizes arbitrary
// length key material to the cipher's key size.
func LoadKey(ctx context.Context, cfg KeyLoaderConfig) ([]byte, error) {
	if cfg.KMSKeyURI != "" {
		return unwrapKey(ctx, cfg.KMSKeyURI, cfg.KeyCiphertext)
	}

	if cfg.EncryptionKey == "" {
		return nil, apperrors.New("ENCRYPTION_KEY is required when no KMS key URI is configured")
	}

	key := sha256.Sum256([]byte(cfg.EncryptionKey))
	return key[:], nil
}

// unwrapKey decrypts the wrapped data key through a gocloud.dev secrets keeper.
func unwrapKey(ctx context.Context, keyURI, keyCiphertext string) ([]byte, error) {
	if keyCiphertext == "" {
		return nil, apperrors.New("ENCRYPTION_KEY_CIPHERTEXT is required when a KMS key URI is configured")
	}

	wrapped, err := base64.StdEncoding.DecodeString(keyCiphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decode wrapped key: %w", err)
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		_ = keeper.Close()
	}()

	key, err := keeper.Decrypt(ctx, wrapped)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap data key: %w", err)
	}

	if len(key) != cryptoDomain.KeySize {
		cryptoDomain.Zero(key)
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	return key, nil
}
