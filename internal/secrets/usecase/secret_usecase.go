package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	cryptoService "github.com/allisson/onetime/internal/crypto/service"
	"github.com/allisson/onetime/internal/database"
	apperrors "github.com/allisson/onetime/internal/errors"
	eventsDomain "github.com/allisson/onetime/internal/events/domain"
	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
)

// secretUseCase implements the SecretUseCase interface.
type secretUseCase struct {
	txManager database.TxManager
	store     SecretStore
	events    EventRecorder
	encryptor cryptoService.EncryptionService
	hasher    cryptoService.PassphraseHasher
}

// Create encrypts the payload and hashes the passphrase concurrently, then
// persists the secret and its CREATE event in one transaction. The cache is
// mirrored only after the transaction commits.
func (s *secretUseCase) Create(
	ctx context.Context,
	input CreateSecretInput,
	client ClientInfo,
) (uuid.UUID, error) {
	var (
		ciphertext     []byte
		passphraseHash []byte
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ciphertext, err = s.encryptor.Encrypt(gCtx, []byte(input.Secret))
		return err
	})
	if input.Passphrase != "" {
		g.Go(func() error {
			var err error
			passphraseHash, err = s.hasher.Hash(gCtx, input.Passphrase)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return uuid.Nil, err
	}

	secret, err := secretsDomain.NewSecret(ciphertext, passphraseHash, input.TTLSeconds, time.Now())
	if err != nil {
		return uuid.Nil, apperrors.Wrap(err, "failed to build secret")
	}

	err = s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.store.Save(txCtx, &secret); err != nil {
			return err
		}
		return s.events.Record(txCtx, secret.ID, eventsDomain.EventTypeCreate, client.IP, client.UserAgent)
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.store.Mirror(ctx, &secret)

	return secret.ID, nil
}

// ReadAndBurn fetches the live secret, decrypts it, and only then consumes it.
// A decryption failure aborts the transaction before any mutation, so a secret
// that cannot be served is never burned. The burn and its READ event commit
// together.
func (s *secretUseCase) ReadAndBurn(
	ctx context.Context,
	id uuid.UUID,
	client ClientInfo,
) (string, error) {
	var plaintext []byte

	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		secret, err := s.store.GetLive(txCtx, id, time.Now())
		if err != nil {
			return err
		}

		plaintext, err = s.encryptor.Decrypt(txCtx, secret.Ciphertext)
		if err != nil {
			return err
		}

		if err := s.store.MarkDeleted(txCtx, id); err != nil {
			return err
		}

		return s.events.Record(txCtx, id, eventsDomain.EventTypeRead, client.IP, client.UserAgent)
	})
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// Delete removes a live secret. When a passphrase hash gates the secret, the
// supplied passphrase must verify against it; a wrong or missing passphrase
// leaves the secret untouched. The burn and its DELETE event commit together.
func (s *secretUseCase) Delete(
	ctx context.Context,
	id uuid.UUID,
	passphrase string,
	client ClientInfo,
) error {
	return s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		secret, err := s.store.GetLive(txCtx, id, time.Now())
		if err != nil {
			return err
		}

		if len(secret.PassphraseHash) > 0 {
			ok, err := s.hasher.Verify(txCtx, passphrase, secret.PassphraseHash)
			if err != nil {
				return err
			}
			if !ok {
				return secretsDomain.ErrIncorrectPassphrase
			}
		}

		if err := s.store.MarkDeleted(txCtx, id); err != nil {
			return err
		}

		return s.events.Record(txCtx, id, eventsDomain.EventTypeDelete, client.IP, client.UserAgent)
	})
}

// ExpireSweep soft-deletes every expirable secret past its deadline, in a
// single transaction. Expiry is silent: no events are recorded. Marking is
// idempotent, so racing with a concurrent read or delete is harmless.
func (s *secretUseCase) ExpireSweep(ctx context.Context) (int, error) {
	candidates, err := s.store.ListExpirable(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	expired := make([]*secretsDomain.Secret, 0)
	for _, secret := range candidates {
		if secret.IsExpired(now) {
			expired = append(expired, secret)
		}
	}
	if len(expired) == 0 {
		return 0, nil
	}

	err = s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		for _, secret := range expired {
			if err := s.store.MarkDeleted(txCtx, secret.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(expired), nil
}

// NewSecretUseCase creates a new SecretUseCase with the provided dependencies.
func NewSecretUseCase(
	txManager database.TxManager,
	store SecretStore,
	events EventRecorder,
	encryptor cryptoService.EncryptionService,
	hasher cryptoService.PassphraseHasher,
) SecretUseCase {
	return &secretUseCase{
		txManager: txManager,
		store:     store,
		events:    events,
		encryptor: encryptor,
		hasher:    hasher,
	}
}
