package app

import (
	"fmt"

	clientsHTTP "github.com/allisson/keywhiz-core/internal/clients/http"
	clientsRepository "github.com/allisson/keywhiz-core/internal/clients/repository"
	clientsUseCase "github.com/allisson/keywhiz-core/internal/clients/usecase"
)

// ClientRepository returns the client repository based on database driver.
func (c *Container) ClientRepository() (clientsRepository.ClientRepository, error) {
	var err error
	c.clientRepoInit.Do(func() {
		c.clientRepo, err = c.initClientRepository()
		if err != nil {
			c.initErrors["clientRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientRepo"]; exists {
		return nil, storedErr
	}
	return c.clientRepo, nil
}

// ClientUseCase returns the client use case.
func (c *Container) ClientUseCase() (clientsUseCase.ClientUseCase, error) {
	var err error
	c.clientUseCaseInit.Do(func() {
		c.clientUseCase, err = c.initClientUseCase()
		if err != nil {
			c.initErrors["clientUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientUseCase"]; exists {
		return nil, storedErr
	}
	return c.clientUseCase, nil
}

// ClientHandler returns the HTTP handler for client administration.
func (c *Container) ClientHandler() (*clientsHTTP.ClientHandler, error) {
	var err error
	c.clientHandlerInit.Do(func() {
		c.clientHandler, err = c.initClientHandler()
		if err != nil {
			c.initErrors["clientHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientHandler"]; exists {
		return nil, storedErr
	}
	return c.clientHandler, nil
}

func (c *Container) initClientRepository() (clientsRepository.ClientRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for client repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return clientsRepository.NewPostgreSQLClientRepository(db), nil
	case "mysql":
		return clientsRepository.NewMySQLClientRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initClientUseCase() (clientsUseCase.ClientUseCase, error) {
	repo, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for client use case: %w", err)
	}

	membership, err := c.MembershipUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership use case for client use case: %w", err)
	}

	return clientsUseCase.NewClientUseCase(repo, membership), nil
}

func (c *Container) initClientHandler() (*clientsHTTP.ClientHandler, error) {
	useCase, err := c.ClientUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get client use case for client handler: %w", err)
	}
	return clientsHTTP.NewClientHandler(useCase, c.Logger()), nil
}
