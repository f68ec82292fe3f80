package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/onetime/internal/metrics"
)

// secretUseCaseWithMetrics decorates SecretUseCase with metrics instrumentation.
type secretUseCaseWithMetrics struct {
	next    SecretUseCase
	metrics metrics.BusinessMetrics
}

// NewSecretUseCaseWithMetrics wraps a SecretUseCase with metrics recording.
func NewSecretUseCaseWithMetrics(useCase SecretUseCase, m metrics.BusinessMetrics) SecretUseCase {
	return &secretUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for secret creation.
func (s *secretUseCaseWithMetrics) Create(
	ctx context.Context,
	input CreateSecretInput,
	client ClientInfo,
) (uuid.UUID, error) {
	start := time.Now()
	id, err := s.next.Create(ctx, input, client)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "secrets", "secret_create", status)
	s.metrics.RecordDuration(ctx, "secrets", "secret_create", time.Since(start), status)

	return id, err
}

// ReadAndBurn records metrics for one-time reads.
func (s *secretUseCaseWithMetrics) ReadAndBurn(
	ctx context.Context,
	id uuid.UUID,
	client ClientInfo,
) (string, error) {
	start := time.Now()
	plaintext, err := s.next.ReadAndBurn(ctx, id, client)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "secrets", "secret_read", status)
	s.metrics.RecordDuration(ctx, "secrets", "secret_read", time.Since(start), status)

	return plaintext, err
}

// Delete records metrics for explicit deletes.
func (s *secretUseCaseWithMetrics) Delete(
	ctx context.Context,
	id uuid.UUID,
	passphrase string,
	client ClientInfo,
) error {
	start := time.Now()
	err := s.next.Delete(ctx, id, passphrase, client)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "secrets", "secret_delete", status)
	s.metrics.RecordDuration(ctx, "secrets", "secret_delete", time.Since(start), status)

	return err
}

// ExpireSweep records metrics for sweep runs.
func (s *secretUseCaseWithMetrics) ExpireSweep(ctx context.Context) (int, error) {
	start := time.Now()
	swept, err := s.next.ExpireSweep(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "secrets", "secret_expire_sweep", status)
	s.metrics.RecordDuration(ctx, "secrets", "secret_expire_sweep", time.Since(start), status)

	return swept, err
}
