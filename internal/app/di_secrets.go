package app

import (
	"fmt"

	secretsHTTP "github.com/allisson/keywhiz-core/internal/secrets/http"
	secretsRepository "github.com/allisson/keywhiz-core/internal/secrets/repository"
	secretsUseCase "github.com/allisson/keywhiz-core/internal/secrets/usecase"
)

// SecretSeriesRepository returns the secret series repository (C3) based on database driver.
func (c *Container) SecretSeriesRepository() (secretsRepository.SecretSeriesRepository, error) {
	var err error
	c.secretSeriesRepoInit.Do(func() {
		c.secretSeriesRepo, err = c.initSecretSeriesRepository()
		if err != nil {
			c.initErrors["secretSeriesRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretSeriesRepo"]; exists {
		return nil, storedErr
	}
	return c.secretSeriesRepo, nil
}

// SecretContentRepository returns the secret content repository (C4) based on database driver.
func (c *Container) SecretContentRepository() (secretsRepository.SecretContentRepository, error) {
	var err error
	c.secretContentRepoInit.Do(func() {
		c.secretContentRepo, err = c.initSecretContentRepository()
		if err != nil {
			c.initErrors["secretContentRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretContentRepo"]; exists {
		return nil, storedErr
	}
	return c.secretContentRepo, nil
}

// SecretController returns the secret controller (C5).
func (c *Container) SecretController() (secretsUseCase.SecretController, error) {
	var err error
	c.secretControllerInit.Do(func() {
		c.secretController, err = c.initSecretController()
		if err != nil {
			c.initErrors["secretController"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretController"]; exists {
		return nil, storedErr
	}
	return c.secretController, nil
}

// SecretHandler returns the HTTP handler for secret management operations.
func (c *Container) SecretHandler() (*secretsHTTP.SecretHandler, error) {
	var err error
	c.secretHandlerInit.Do(func() {
		c.secretHandler, err = c.initSecretHandler()
		if err != nil {
			c.initErrors["secretHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretHandler"]; exists {
		return nil, storedErr
	}
	return c.secretHandler, nil
}

func (c *Container) initSecretSeriesRepository() (secretsRepository.SecretSeriesRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for secret series repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return secretsRepository.NewPostgreSQLSecretSeriesRepository(db), nil
	case "mysql":
		return secretsRepository.NewMySQLSecretSeriesRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initSecretContentRepository() (secretsRepository.SecretContentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for secret content repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return secretsRepository.NewPostgreSQLSecretContentRepository(db), nil
	case "mysql":
		return secretsRepository.NewMySQLSecretContentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initSecretController() (secretsUseCase.SecretController, error) {
	seriesRepo, err := c.SecretSeriesRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret series repository for secret controller: %w", err)
	}

	contentRepo, err := c.SecretContentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret content repository for secret controller: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for secret controller: %w", err)
	}

	cryptographer, err := c.Cryptographer()
	if err != nil {
		return nil, fmt.Errorf("failed to get cryptographer for secret controller: %w", err)
	}

	membership, err := c.MembershipUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership use case for secret controller: %w", err)
	}

	return secretsUseCase.NewSecretController(seriesRepo, contentRepo, txManager, cryptographer, membership), nil
}

func (c *Container) initSecretHandler() (*secretsHTTP.SecretHandler, error) {
	secretController, err := c.SecretController()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret controller for secret handler: %w", err)
	}

	aclEngine, err := c.AclEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to get acl engine for secret handler: %w", err)
	}

	cryptographer, err := c.Cryptographer()
	if err != nil {
		return nil, fmt.Errorf("failed to get cryptographer for secret handler: %w", err)
	}

	return secretsHTTP.NewSecretHandler(secretController, aclEngine, cryptographer, c.Logger()), nil
}
