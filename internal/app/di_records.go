package app

import (
	"fmt"

	"github.com/allisson/txvault/internal/database"
	recordsHTTP "github.com/allisson/txvault/internal/records/http"
	recordsRepository "github.com/allisson/txvault/internal/records/repository"
	recordsUseCase "github.com/allisson/txvault/internal/records/usecase"
)

// RecordRepository returns the record repository for the configured database driver.
func (c *Container) RecordRepository() (recordsUseCase.RecordRepository, error) {
	var err error
	c.recordRepositoryInit.Do(func() {
		c.recordRepository, err = c.initRecordRepository()
		if err != nil {
			c.initErrors["recordRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recordRepository"]; exists {
		return nil, storedErr
	}
	return c.recordRepository, nil
}

// RecordUseCase returns the record use case, wrapped with metrics when enabled.
func (c *Container) RecordUseCase() (recordsUseCase.RecordUseCase, error) {
	var err error
	c.recordUseCaseInit.Do(func() {
		c.recordUseCase, err = c.initRecordUseCase()
		if err != nil {
			c.initErrors["recordUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recordUseCase"]; exists {
		return nil, storedErr
	}
	return c.recordUseCase, nil
}

// RecordHandler returns the HTTP handler for record operations.
func (c *Container) RecordHandler() (*recordsHTTP.RecordHandler, error) {
	var err error
	c.recordHandlerInit.Do(func() {
		c.recordHandler, err = c.initRecordHandler()
		if err != nil {
			c.initErrors["recordHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recordHandler"]; exists {
		return nil, storedErr
	}
	return c.recordHandler, nil
}

func (c *Container) initRecordRepository() (recordsUseCase.RecordRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for record repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return recordsRepository.NewPostgreSQLRecordRepository(db), nil
	case database.DriverMySQL:
		return recordsRepository.NewMySQLRecordRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initRecordUseCase() (recordsUseCase.RecordUseCase, error) {
	masterKey, err := c.MasterKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key for record use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for record use case: %w", err)
	}

	recordRepository, err := c.RecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get record repository for record use case: %w", err)
	}

	useCase := recordsUseCase.NewRecordUseCase(txManager, recordRepository, c.EnvelopeService(), masterKey)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for record use case: %w", err)
		}
		return recordsUseCase.NewRecordUseCaseWithMetrics(useCase, businessMetrics), nil
	}

	return useCase, nil
}

func (c *Container) initRecordHandler() (*recordsHTTP.RecordHandler, error) {
	useCase, err := c.RecordUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get record use case for record handler: %w", err)
	}

	return recordsHTTP.NewRecordHandler(useCase, c.Logger()), nil
}
