package app

import (
	"fmt"

	eventsHTTP "github.com/allisson/onetime/internal/events/http"
	eventsRepository "github.com/allisson/onetime/internal/events/repository"
	eventsUseCase "github.com/allisson/onetime/internal/events/usecase"
)

// EventRepository returns the event repository based on the database driver.
func (c *Container) EventRepository() (eventsUseCase.EventRepository, error) {
	c.eventRepoInit.Do(func() {
		repo, err := c.initEventRepository()
		if err != nil {
			c.initErrors["eventRepository"] = err
			return
		}
		c.eventRepository = repo
	})
	if storedErr, exists := c.initErrors["eventRepository"]; exists {
		return nil, storedErr
	}
	return c.eventRepository, nil
}

// EventUseCase returns the event use case.
func (c *Container) EventUseCase() (eventsUseCase.EventUseCase, error) {
	c.eventUseCaseInit.Do(func() {
		useCase, err := c.initEventUseCase()
		if err != nil {
			c.initErrors["eventUseCase"] = err
			return
		}
		c.eventUseCase = useCase
	})
	if storedErr, exists := c.initErrors["eventUseCase"]; exists {
		return nil, storedErr
	}
	return c.eventUseCase, nil
}

// EventHandler returns the HTTP handler for the event trail.
func (c *Container) EventHandler() (*eventsHTTP.EventHandler, error) {
	c.eventHandlerInit.Do(func() {
		useCase, err := c.EventUseCase()
		if err != nil {
			c.initErrors["eventHandler"] = fmt.Errorf("failed to get event use case for event handler: %w", err)
			return
		}
		c.eventHandler = eventsHTTP.NewEventHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["eventHandler"]; exists {
		return nil, storedErr
	}
	return c.eventHandler, nil
}

// initEventRepository creates the event repository based on the database driver.
func (c *Container) initEventRepository() (eventsUseCase.EventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for event repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return eventsRepository.NewPostgreSQLEventRepository(db), nil
	case "mysql":
		return eventsRepository.NewMySQLEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initEventUseCase creates the event use case with all its dependencies.
func (c *Container) initEventUseCase() (eventsUseCase.EventUseCase, error) {
	repo, err := c.EventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get event repository for event use case: %w", err)
	}

	baseUseCase := eventsUseCase.NewEventUseCase(repo)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for event use case: %w", err)
		}
		return eventsUseCase.NewEventUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
