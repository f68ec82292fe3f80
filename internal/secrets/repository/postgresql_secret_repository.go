// Package repository implements durable persistence for one-time secrets.
// Repositories support both PostgreSQL and MySQL with soft deletion; deleted
// rows are kept for auditability and never resurface through reads.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/onetime/internal/database"
	apperrors "github.com/allisson/onetime/internal/errors"
	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
)

// PostgreSQLSecretRepository implements Secret persistence for PostgreSQL databases.
type PostgreSQLSecretRepository struct {
	db *sql.DB
}

// Create inserts a new secret into the PostgreSQL database.
func (p *PostgreSQLSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO secrets (id, ciphertext, passphrase_hash, created_at, expires_at, is_deleted)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		secret.ID,
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
func (p *PostgreSQLSecretRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, ciphertext, passphrase_hash, created_at, expires_at, is_deleted
			  FROM secrets
			  WHERE id = $1 AND is_deleted = FALSE
			  LIMIT 1`

	var secret secretsDomain.Secret
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&secret.ID,
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

	return &secret, nil
}

// ListExpirable returns all non-deleted secrets that carry an expiry deadline.
func (p *PostgreSQLSecretRepository) ListExpirable(
	ctx context.Context,
) ([]*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

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
		err := rows.Scan(
			&secret.ID,
			&secret.Ciphertext,
			&secret.PassphraseHash,
			&secret.CreatedAt,
			&secret.ExpiresAt,
			&secret.IsDeleted,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan expirable secret")
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
func (p *PostgreSQLSecretRepository) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE secrets
			  SET is_deleted = TRUE
			  WHERE id = $1`

	_, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to mark secret as deleted")
	}

	return nil
}

// NewPostgreSQLSecretRepository creates a new PostgreSQL Secret repository instance.
func NewPostgreSQLSecretRepository(db *sql.DB) *PostgreSQLSecretRepository {
	return &PostgreSQLSecretRepository{db: db}
}
