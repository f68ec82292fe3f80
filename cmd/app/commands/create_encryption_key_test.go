package commands

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets"
	_ "gocloud.dev/secrets/localsecrets"

	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
)

func TestRunCreateEncryptionKey(t *testing.T) {
	ctx := context.Background()

	t.Run("RawKey", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunCreateEncryptionKey(ctx, "", &out))

		line := strings.TrimSpace(out.String())
		require.True(t, strings.HasPrefix(line, "ENCRYPTION_KEY="))

		key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(line, "ENCRYPTION_KEY="))
		require.NoError(t, err)
		assert.Len(t, key, cryptoDomain.KeySize)
	})

	t.Run("KMSWrappedKey", func(t *testing.T) {
		kek := make([]byte, 32)
		_, err := rand.Read(kek)
		require.NoError(t, err)
		keyURI := "base64key://" + base64.URLEncoding.EncodeToString(kek)

		var out bytes.Buffer
		require.NoError(t, RunCreateEncryptionKey(ctx, keyURI, &out))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "KMS_KEY_URI="+keyURI, lines[0])
		require.True(t, strings.HasPrefix(lines[1], "ENCRYPTION_KEY_CIPHERTEXT="))

		// The printed ciphertext must unwrap to a valid 32-byte key.
		wrapped, err := base64.StdEncoding.DecodeString(
			strings.TrimPrefix(lines[1], "ENCRYPTION_KEY_CIPHERTEXT="),
		)
		require.NoError(t, err)

		keeper, err := secrets.OpenKeeper(ctx, keyURI)
		require.NoError(t, err)
		defer func() {
			_ = keeper.Close()
		}()

		key, err := keeper.Decrypt(ctx, wrapped)
		require.NoError(t, err)
		assert.Len(t, key, cryptoDomain.KeySize)
	})

	t.Run("InvalidKeeperURI", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCreateEncryptionKey(ctx, "bogus://nope", &out)
		assert.Error(t, err)
	})
}

func TestMigrationsPathForDriver(t *testing.T) {
	assert.Equal(t, "file://migrations/postgresql", migrationsPathForDriver("postgres"))
	assert.Equal(t, "file://migrations/mysql", migrationsPathForDriver("mysql"))
	assert.Equal(t, "file://migrations/postgresql", migrationsPathForDriver(""))
}
