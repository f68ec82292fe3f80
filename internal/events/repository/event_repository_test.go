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

	eventsDomain "github.com/allisson/onetime/internal/events/domain"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return db, mock
}

func eventColumns() []string {
	return []string{"id", "secret_id", "type", "client_ip", "client_user_agent", "created_at"}
}

func newEvent(t *testing.T, eventType eventsDomain.EventType) *eventsDomain.Event {
	t.Helper()

	event, err := eventsDomain.NewEvent(
		uuid.Must(uuid.NewV7()),
		eventType,
		"203.0.113.7",
		"curl/8.5.0",
		time.Now(),
	)
	require.NoError(t, err)
	return &event
}

func TestPostgreSQLEventRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLEventRepository(db)
	ctx := context.Background()

	event := newEvent(t, eventsDomain.EventTypeCreate)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO events`)).
		WithArgs(event.ID, event.SecretID, "CREATE", event.ClientIP, event.ClientUserAgent, event.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(ctx, event))
}

func TestPostgreSQLEventRepository_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("ReturnsEventsInInsertionOrder", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLEventRepository(db)

		first := newEvent(t, eventsDomain.EventTypeCreate)
		second := newEvent(t, eventsDomain.EventTypeRead)

		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY id ASC`)).
			WillReturnRows(sqlmock.NewRows(eventColumns()).
				AddRow(first.ID, first.SecretID, string(first.Type), first.ClientIP, first.ClientUserAgent, first.CreatedAt).
				AddRow(second.ID, second.SecretID, string(second.Type), second.ClientIP, second.ClientUserAgent, second.CreatedAt))

		events, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, eventsDomain.EventTypeCreate, events[0].Type)
		assert.Equal(t, eventsDomain.EventTypeRead, events[1].Type)
	})

	t.Run("EmptyTableYieldsEmptySlice", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLEventRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY id ASC`)).
			WillReturnRows(sqlmock.NewRows(eventColumns()))

		events, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, events)
		assert.Empty(t, events)
	})
}

func TestMySQLEventRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLEventRepository(db)
	ctx := context.Background()

	event := newEvent(t, eventsDomain.EventTypeDelete)
	id, err := event.ID.MarshalBinary()
	require.NoError(t, err)
	secretID, err := event.SecretID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO events`)).
		WithArgs(id, secretID, "DELETE", event.ClientIP, event.ClientUserAgent, event.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(ctx, event))
}

func TestMySQLEventRepository_GetAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLEventRepository(db)
	ctx := context.Background()

	event := newEvent(t, eventsDomain.EventTypeRead)
	id, err := event.ID.MarshalBinary()
	require.NoError(t, err)
	secretID, err := event.SecretID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY id ASC`)).
		WillReturnRows(sqlmock.NewRows(eventColumns()).
			AddRow(id, secretID, string(event.Type), event.ClientIP, event.ClientUserAgent, event.CreatedAt))

	events, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.ID, events[0].ID)
	assert.Equal(t, event.SecretID, events[0].SecretID)
}
