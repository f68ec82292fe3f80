package app

import (
	"context"
	"fmt"

	secretsCache "github.com/allisson/onetime/internal/secrets/cache"
	secretsHTTP "github.com/allisson/onetime/internal/secrets/http"
	secretsRepository "github.com/allisson/onetime/internal/secrets/repository"
	secretsStore "github.com/allisson/onetime/internal/secrets/store"
	secretsUseCase "github.com/allisson/onetime/internal/secrets/usecase"
)

// SecretRepository returns the secret repository based on the database driver.
func (c *Container) SecretRepository() (secretsStore.SecretRepository, error) {
	c.secretRepoInit.Do(func() {
		repo, err := c.initSecretRepository()
		if err != nil {
			c.initErrors["secretRepository"] = err
			return
		}
		c.secretRepository = repo
	})
	if storedErr, exists := c.initErrors["secretRepository"]; exists {
		return nil, storedErr
	}
	return c.secretRepository, nil
}

// SecretCache returns the Redis-backed secret mirror.
func (c *Container) SecretCache(ctx context.Context) (secretsStore.SecretCache, error) {
	c.secretCacheInit.Do(func() {
		client, err := c.RedisClient(ctx)
		if err != nil {
			c.initErrors["secretCache"] = fmt.Errorf("failed to get redis client for secret cache: %w", err)
			return
		}
		c.secretCache = secretsCache.NewRedisSecretCache(client, c.config.CacheTTL)
	})
	if storedErr, exists := c.initErrors["secretCache"]; exists {
		return nil, storedErr
	}
	return c.secretCache, nil
}

// SecretStore returns the store combining the durable repository with the
// cache mirror.
func (c *Container) SecretStore(ctx context.Context) (*secretsStore.SecretStore, error) {
	c.secretStoreInit.Do(func() {
		repo, err := c.SecretRepository()
		if err != nil {
			c.initErrors["secretStore"] = fmt.Errorf("failed to get secret repository for secret store: %w", err)
			return
		}

		secretCache, err := c.SecretCache(ctx)
		if err != nil {
			c.initErrors["secretStore"] = fmt.Errorf("failed to get secret cache for secret store: %w", err)
			return
		}

		c.secretStore = secretsStore.NewSecretStore(repo, secretCache, c.Logger())
	})
	if storedErr, exists := c.initErrors["secretStore"]; exists {
		return nil, storedErr
	}
	return c.secretStore, nil
}

// SecretUseCase returns the secret use case.
func (c *Container) SecretUseCase(ctx context.Context) (secretsUseCase.SecretUseCase, error) {
	c.secretUseCaseInit.Do(func() {
		useCase, err := c.initSecretUseCase(ctx)
		if err != nil {
			c.initErrors["secretUseCase"] = err
			return
		}
		c.secretUseCase = useCase
	})
	if storedErr, exists := c.initErrors["secretUseCase"]; exists {
		return nil, storedErr
	}
	return c.secretUseCase, nil
}

// SecretHandler returns the HTTP handler for secret operations.
func (c *Container) SecretHandler(ctx context.Context) (*secretsHTTP.SecretHandler, error) {
	c.secretHandlerInit.Do(func() {
		useCase, err := c.SecretUseCase(ctx)
		if err != nil {
			c.initErrors["secretHandler"] = fmt.Errorf("failed to get secret use case for secret handler: %w", err)
			return
		}
		c.secretHandler = secretsHTTP.NewSecretHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["secretHandler"]; exists {
		return nil, storedErr
	}
	return c.secretHandler, nil
}

// Sweeper returns the background expiration sweeper.
func (c *Container) Sweeper(ctx context.Context) (*secretsUseCase.Sweeper, error) {
	c.sweeperInit.Do(func() {
		useCase, err := c.SecretUseCase(ctx)
		if err != nil {
			c.initErrors["sweeper"] = fmt.Errorf("failed to get secret use case for sweeper: %w", err)
			return
		}
		c.sweeper = secretsUseCase.NewSweeper(useCase, c.config.SweepInterval, c.Logger())
	})
	if storedErr, exists := c.initErrors["sweeper"]; exists {
		return nil, storedErr
	}
	return c.sweeper, nil
}

// initSecretRepository creates the secret repository based on the database driver.
func (c *Container) initSecretRepository() (secretsStore.SecretRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for secret repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return secretsRepository.NewPostgreSQLSecretRepository(db), nil
	case "mysql":
		return secretsRepository.NewMySQLSecretRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSecretUseCase creates the secret use case with all its dependencies.
func (c *Container) initSecretUseCase(ctx context.Context) (secretsUseCase.SecretUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for secret use case: %w", err)
	}

	store, err := c.SecretStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get secret store for secret use case: %w", err)
	}

	eventUseCase, err := c.EventUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get event use case for secret use case: %w", err)
	}

	encryptor, err := c.Encryptor(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get encryptor for secret use case: %w", err)
	}

	hasher, err := c.PassphraseHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get passphrase hasher for secret use case: %w", err)
	}

	baseUseCase := secretsUseCase.NewSecretUseCase(txManager, store, eventUseCase, encryptor, hasher)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for secret use case: %w", err)
		}
		return secretsUseCase.NewSecretUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
