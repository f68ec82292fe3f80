// Package repository implements append-only persistence for audit events.
// Events are only ever inserted and listed; there is no update or delete path.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/onetime/internal/database"
	apperrors "github.com/allisson/onetime/internal/errors"
	eventsDomain "github.com/allisson/onetime/internal/events/domain"
)

// PostgreSQLEventRepository implements Event persistence for PostgreSQL databases.
type PostgreSQLEventRepository struct {
	db *sql.DB
}

// Create appends a new event.
func (p *PostgreSQLEventRepository) Create(ctx context.Context, event *eventsDomain.Event) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO events (id, secret_id, type, client_ip, client_user_agent, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		event.ID,
		event.SecretID,
		string(event.Type),
		event.ClientIP,
		event.ClientUserAgent,
		event.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create event")
	}

	return nil
}

// GetAll returns every event in insertion order. UUIDv7 ids are time-ordered,
// so ordering by id preserves append order.
func (p *PostgreSQLEventRepository) GetAll(ctx context.Context) ([]*eventsDomain.Event, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, secret_id, type, client_ip, client_user_agent, created_at
			  FROM events
			  ORDER BY id ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list events")
	}
	defer func() {
		_ = rows.Close()
	}()

	events := make([]*eventsDomain.Event, 0)
	for rows.Next() {
		var event eventsDomain.Event
		var eventType string

		err := rows.Scan(
			&event.ID,
			&event.SecretID,
			&eventType,
			&event.ClientIP,
			&event.ClientUserAgent,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan event")
		}

		event.Type = eventsDomain.EventType(eventType)
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate events")
	}

	return events, nil
}

// NewPostgreSQLEventRepository creates a new PostgreSQL Event repository instance.
func NewPostgreSQLEventRepository(db *sql.DB) *PostgreSQLEventRepository {
	return &PostgreSQLEventRepository{db: db}
}
