package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/onetime/internal/database"
	apperrors "github.com/allisson/onetime/internal/errors"
	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
)

// MySQLSecretRepository implements Secret persistence for MySQL databases.
type MySQLSecretRepository struct {
	db *sql.DB
}

// Create inserts a new secret into the MySQL database.
func (m *MySQLSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO secrets (id, ciphertext, passphrase_hash, created_at, expires_at, is_deleted)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := secret.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal secret id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		secret.Ciphertext,
		secret.PassphraseHash,
		secret.CreatedAt,
		secret.ExpiresAt,
		secret.IsDeleted,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create secret")
	}

	return nil
}

// GetByID retrieves a non-deleted secret by its id. Expiry is not filtered
// here; the store layer applies the liveness check against a single clock.
func (m *MySQLSecretRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, ciphertext, passphrase_hash, created_at, expires_at, is_deleted
			  FROM secrets
			  WHERE id = ? AND is_deleted = FALSE
			  LIMIT 1`

	binID, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal secret id")
	}

	var secret secretsDomain.Secret
	var rawID []byte

	err = querier.QueryRowContext(ctx, query, binID).Scan(
		&rawID,
		&secret.Ciphertext,
		&secret.PassphraseHash,
		&secret.CreatedAt,
		&secret.ExpiresAt,
		&secret.IsDeleted,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get secret by id")
	}

	if err := secret.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal secret id")
	}

	return &secret, nil
}

// ListExpirable returns all non-deleted secrets that carry an expiry deadline.
func (m *MySQLSecretRepository) ListExpirable(
	ctx context.Context,
) ([]*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, ciphertext, passphrase_hash, created_at, expires_at, is_deleted
			  FROM secrets
			  WHERE expires_at IS NOT NULL AND is_deleted = FALSE`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list expirable secrets")
	}
	defer func() {
		_ = rows.Close()
	}()

	var secrets []*secretsDomain.Secret
	for rows.Next() {
		var secret secretsDomain.Secret
		var rawID []byte

		err := rows.Scan(
			&rawID,
			&secret.Ciphertext,
			&secret.PassphraseHash,
			&secret.CreatedAt,
			&secret.ExpiresAt,
			&secret.IsDeleted,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan expirable secret")
		}

		if err := secret.ID.UnmarshalBinary(rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal secret id")
		}

		secrets = append(secrets, &secret)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate expirable secrets")
	}

	return secrets, nil
}

// MarkDeleted performs a soft delete by raising the is_deleted flag. Marking
// an already-deleted or absent row is a no-op, which keeps the operation
// idempotent under concurrent reads.
func (m *MySQLSecretRepository) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE secrets
			  SET is_deleted = TRUE
			  WHERE id = ?`

	binID, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal secret id")
	}

	_, err = querier.ExecContext(ctx, query, binID)
	if err != nil {
		return apperrors.Wrap(err, "failed to mark secret as deleted")
	}

	return nil
}

// NewMySQLSecretRepository creates a new MySQL Secret repository instance.
func NewMySQLSecretRepository(db *sql.DB) *MySQLSecretRepository {
	return &MySQLSecretRepository{db: db}
}
