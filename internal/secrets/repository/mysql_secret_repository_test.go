package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/onetime/internal/errors"
	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
)

func binaryID(t *testing.T, id uuid.UUID) []byte {
	t.Helper()

	raw, err := id.MarshalBinary()
	require.NoError(t, err)
	return raw
}

func TestMySQLSecretRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLSecretRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	secret := &secretsDomain.Secret{
		ID:             uuid.Must(uuid.NewV7()),
		Ciphertext:     []byte("blob"),
		PassphraseHash: []byte("hash"),
		CreatedAt:      now,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO secrets`)).
		WithArgs(binaryID(t, secret.ID), secret.Ciphertext, secret.PassphraseHash, secret.CreatedAt, nil, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(ctx, secret))
}

func TestMySQLSecretRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("ReturnsSecretWithBinaryID", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLSecretRepository(db)

		id := uuid.Must(uuid.NewV7())
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, ciphertext, passphrase_hash`)).
			WithArgs(binaryID(t, id)).
			WillReturnRows(sqlmock.NewRows(secretColumns()).
				AddRow(binaryID(t, id), []byte("blob"), []byte("hash"), now, nil, false))

		secret, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, secret.ID)
		assert.Nil(t, secret.ExpiresAt)
	})

	t.Run("ReturnsNotFoundForMissingRow", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLSecretRepository(db)

		id := uuid.Must(uuid.NewV7())
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, ciphertext, passphrase_hash`)).
			WithArgs(binaryID(t, id)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, id)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}

func TestMySQLSecretRepository_ListExpirable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLSecretRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	id := uuid.Must(uuid.NewV7())

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE expires_at IS NOT NULL AND is_deleted = FALSE`)).
		WillReturnRows(sqlmock.NewRows(secretColumns()).
			AddRow(binaryID(t, id), []byte("blob"), []byte("hash"), now, now.Add(time.Minute), false))

	secrets, err := repo.ListExpirable(ctx)
	require.NoError(t, err)
	require.Len(t, secrets, 1)
	assert.Equal(t, id, secrets[0].ID)
}

func TestMySQLSecretRepository_MarkDeleted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLSecretRepository(db)
	ctx := context.Background()

	id := uuid.Must(uuid.NewV7())
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE secrets`)).
		WithArgs(binaryID(t, id)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkDeleted(ctx, id))
}
