package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
)

// RunCreateEncryptionKey generates a random 32-byte key for the ENCRYPTION_KEY
// setting. With a KMS key URI the raw key never leaves the process: only the
// KMS-wrapped form is printed, for use with KMS_KEY_URI and
// ENCRYPTION_KEY_CIPHERTEXT.
func RunCreateEncryptionKey(ctx context.Context, kmsKeyURI string, w io.Writer) error {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate encryption key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	if kmsKeyURI == "" {
		fmt.Fprintf(w, "ENCRYPTION_KEY=%s\n", base64.StdEncoding.EncodeToString(key))
		return nil
	}

	keeper, err := secrets.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		_ = keeper.Close()
	}()

	wrapped, err := keeper.Encrypt(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to wrap encryption key: %w", err)
	}

	fmt.Fprintf(w, "KMS_KEY_URI=%s\n", kmsKeyURI)
	fmt.Fprintf(w, "ENCRYPTION_KEY_CIPHERTEXT=%s\n", base64.StdEncoding.EncodeToString(wrapped))
	return nil
}
