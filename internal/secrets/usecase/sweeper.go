package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// Database error codes for a missing secrets table. During rollout the sweep
// can start before migrations have run; those cycles are skipped instead of
// crashing the process.
const (
	pgUndefinedTable = "42P01"
	mysqlNoSuchTable = 1146
	sweepRunTimeout  = 30 * time.Second
)

// Sweeper periodically soft-deletes expired secrets.
type Sweeper struct {
	secretUseCase SecretUseCase
	interval      time.Duration
	logger        *slog.Logger
}

// NewSweeper creates a Sweeper running at the given interval.
func NewSweeper(secretUseCase SecretUseCase, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		secretUseCase: secretUseCase,
		interval:      interval,
		logger:        logger,
	}
}

// Start runs the sweep loop until ctx is cancelled. One sweep runs
// immediately at startup, then one per tick; cycles never overlap because the
// loop only re-arms after a sweep returns.
func (s *Sweeper) Start(ctx context.Context) error {
	s.logger.Info("starting expired secret sweeper", slog.Duration("interval", s.interval))

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopping expired secret sweeper")
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep runs a single cycle. Failures are logged and the loop keeps going;
// the next cycle retries.
func (s *Sweeper) sweep(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, sweepRunTimeout)
	defer cancel()

	swept, err := s.secretUseCase.ExpireSweep(runCtx)
	if err != nil {
		if isMissingTable(err) {
			s.logger.Warn("secrets table not present yet, skipping sweep cycle")
			return
		}
		s.logger.Error("failed to sweep expired secrets", slog.Any("error", err))
		return
	}

	if swept > 0 {
		s.logger.Info("swept expired secrets", slog.Int("count", swept))
	}
}

// isMissingTable reports whether err is a missing-table error from either
// supported database driver.
func isMissingTable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUndefinedTable {
		return true
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlNoSuchTable {
		return true
	}

	return false
}
