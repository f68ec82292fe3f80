package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/allisson/onetime/internal/errors"
	"github.com/allisson/onetime/internal/secrets/usecase"
	"github.com/allisson/onetime/internal/secrets/usecase/mocks"
)

func newTestSweeper(uc usecase.SecretUseCase, interval time.Duration) *usecase.Sweeper {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return usecase.NewSweeper(uc, interval, logger)
}

func TestSweeper_Start(t *testing.T) {
	t.Run("SweepsAtStartupThenOnTicks", func(t *testing.T) {
		uc := &mocks.MockSecretUseCase{}
		uc.On("ExpireSweep", mock.Anything).Return(0, nil)

		ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
		defer cancel()

		err := newTestSweeper(uc, 30*time.Millisecond).Start(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		calls := len(uc.Calls)
		assert.GreaterOrEqual(t, calls, 2, "expected the startup sweep plus at least one tick")
	})

	t.Run("StopsOnContextCancel", func(t *testing.T) {
		uc := &mocks.MockSecretUseCase{}
		uc.On("ExpireSweep", mock.Anything).Return(0, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := newTestSweeper(uc, time.Hour).Start(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("SweepFailureKeepsLoopRunning", func(t *testing.T) {
		uc := &mocks.MockSecretUseCase{}
		uc.On("ExpireSweep", mock.Anything).Return(0, apperrors.New("db down"))

		ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
		defer cancel()

		err := newTestSweeper(uc, 20*time.Millisecond).Start(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.GreaterOrEqual(t, len(uc.Calls), 2)
	})

	t.Run("MissingTableIsSkipped", func(t *testing.T) {
		uc := &mocks.MockSecretUseCase{}
		uc.On("ExpireSweep", mock.Anything).Return(0, &pq.Error{Code: "42P01"})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := newTestSweeper(uc, 20*time.Millisecond).Start(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestIsMissingTable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "PostgresUndefinedTable", err: &pq.Error{Code: "42P01"}, want: true},
		{name: "MySQLNoSuchTable", err: &mysql.MySQLError{Number: 1146}, want: true},
		{name: "WrappedPostgresError", err: apperrors.Wrap(&pq.Error{Code: "42P01"}, "sweep failed"), want: true},
		{name: "OtherPostgresError", err: &pq.Error{Code: "23505"}, want: false},
		{name: "OtherMySQLError", err: &mysql.MySQLError{Number: 1062}, want: false},
		{name: "PlainError", err: apperrors.New("boom"), want: false},
		{name: "Nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.IsMissingTable(tt.err))
		})
	}
}
