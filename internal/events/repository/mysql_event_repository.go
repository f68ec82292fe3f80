package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/onetime/internal/database"
	apperrors "github.com/allisson/onetime/internal/errors"
	eventsDomain "github.com/allisson/onetime/internal/events/domain"
)

// MySQLEventRepository implements Event persistence for MySQL databases.
type MySQLEventRepository struct {
	db *sql.DB
}

// Create appends a new event.
func (m *MySQLEventRepository) Create(ctx context.Context, event *eventsDomain.Event) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO events (id, secret_id, type, client_ip, client_user_agent, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal event id")
	}

	secretID, err := event.SecretID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal secret id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		secretID,
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
func (m *MySQLEventRepository) GetAll(ctx context.Context) ([]*eventsDomain.Event, error) {
	querier := database.GetTx(ctx, m.db)

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
		var rawID, rawSecretID []byte
		var eventType string

		err := rows.Scan(
			&rawID,
			&rawSecretID,
			&eventType,
			&event.ClientIP,
			&event.ClientUserAgent,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan event")
		}

		if err := event.ID.UnmarshalBinary(rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal event id")
		}
		if err := event.SecretID.UnmarshalBinary(rawSecretID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal secret id")
		}

		event.Type = eventsDomain.EventType(eventType)
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate events")
	}

	return events, nil
}

// NewMySQLEventRepository creates a new MySQL Event repository instance.
func NewMySQLEventRepository(db *sql.DB) *MySQLEventRepository {
	return &MySQLEventRepository{db: db}
}
