package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/allisson/onetime/internal/app"
	"github.com/allisson/onetime/internal/config"
)

// RunExpireSecrets runs a single expiration sweep and exits. It exists for
// deployments that prefer an external scheduler over the in-process sweeper.
func RunExpireSecrets(ctx context.Context) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	useCase, err := container.SecretUseCase(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize secret use case: %w", err)
	}

	swept, err := useCase.ExpireSweep(ctx)
	if err != nil {
		return fmt.Errorf("failed to run expiration sweep: %w", err)
	}

	logger.Info("expiration sweep completed", slog.Int("swept", swept))
	return nil
}
