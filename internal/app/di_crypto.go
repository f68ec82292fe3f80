package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
	cryptoService "github.com/allisson/onetime/internal/crypto/service"
)

// EncryptionKey returns the resolved 32-byte data encryption key.
func (c *Container) EncryptionKey(ctx context.Context) ([]byte, error) {
	c.encryptionKeyInit.Do(func() {
		key, err := cryptoService.LoadKey(ctx, cryptoService.KeyLoaderConfig{
			EncryptionKey: c.config.EncryptionKey,
			KMSKeyURI:     c.config.KMSKeyURI,
			KeyCiphertext: c.config.EncryptionKeyCiphertext,
		})
		if err != nil {
			c.initErrors["encryptionKey"] = fmt.Errorf("failed to load encryption key: %w", err)
			return
		}
		c.encryptionKey = key
	})
	if storedErr, exists := c.initErrors["encryptionKey"]; exists {
		return nil, storedErr
	}
	return c.encryptionKey, nil
}

// Encryptor returns the AEAD encryption service.
func (c *Container) Encryptor(ctx context.Context) (cryptoService.EncryptionService, error) {
	c.encryptorInit.Do(func() {
		encryptor, err := c.initEncryptor(ctx)
		if err != nil {
			c.initErrors["encryptor"] = err
			return
		}
		c.encryptor = encryptor
	})
	if storedErr, exists := c.initErrors["encryptor"]; exists {
		return nil, storedErr
	}
	return c.encryptor, nil
}

// PassphraseHasher returns the Argon2id passphrase hasher.
func (c *Container) PassphraseHasher() (cryptoService.PassphraseHasher, error) {
	c.passphraseHasherInit.Do(func() {
		pool, err := c.WorkerPool()
		if err != nil {
			c.initErrors["passphraseHasher"] = fmt.Errorf("failed to get worker pool for passphrase hasher: %w", err)
			return
		}
		c.passphraseHasher = cryptoService.NewArgon2PassphraseHasher(pool)
	})
	if storedErr, exists := c.initErrors["passphraseHasher"]; exists {
		return nil, storedErr
	}
	return c.passphraseHasher, nil
}

// initEncryptor resolves the key, builds the configured AEAD cipher, and wraps
// it with the worker pool backed encryptor.
func (c *Container) initEncryptor(ctx context.Context) (cryptoService.EncryptionService, error) {
	algorithm, err := cryptoDomain.ParseAlgorithm(c.config.EncryptionAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("invalid encryption algorithm %q: %w", c.config.EncryptionAlgorithm, err)
	}

	key, err := c.EncryptionKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get encryption key for encryptor: %w", err)
	}

	aead, err := cryptoService.NewAEADManager().CreateCipher(key, algorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to create aead cipher: %w", err)
	}

	pool, err := c.WorkerPool()
	if err != nil {
		return nil, fmt.Errorf("failed to get worker pool for encryptor: %w", err)
	}

	return cryptoService.NewEncryptor(aead, pool), nil
}
