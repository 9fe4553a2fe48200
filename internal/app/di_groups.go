package app

import (
	"fmt"

	groupsHTTP "github.com/allisson/keywhiz-core/internal/groups/http"
	groupsRepository "github.com/allisson/keywhiz-core/internal/groups/repository"
	groupsUseCase "github.com/allisson/keywhiz-core/internal/groups/usecase"
)

// GroupRepository returns the group repository based on database driver.
func (c *Container) GroupRepository() (groupsRepository.GroupRepository, error) {
	var err error
	c.groupRepoInit.Do(func() {
		c.groupRepo, err = c.initGroupRepository()
		if err != nil {
			c.initErrors["groupRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["groupRepo"]; exists {
		return nil, storedErr
	}
	return c.groupRepo, nil
}

// GroupUseCase returns the group use case.
func (c *Container) GroupUseCase() (groupsUseCase.GroupUseCase, error) {
	var err error
	c.groupUseCaseInit.Do(func() {
		c.groupUseCase, err = c.initGroupUseCase()
		if err != nil {
			c.initErrors["groupUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["groupUseCase"]; exists {
		return nil, storedErr
	}
	return c.groupUseCase, nil
}

// GroupHandler returns the HTTP handler for group administration.
func (c *Container) GroupHandler() (*groupsHTTP.GroupHandler, error) {
	var err error
	c.groupHandlerInit.Do(func() {
		c.groupHandler, err = c.initGroupHandler()
		if err != nil {
			c.initErrors["groupHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["groupHandler"]; exists {
		return nil, storedErr
	}
	return c.groupHandler, nil
}

func (c *Container) initGroupRepository() (groupsRepository.GroupRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for group repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return groupsRepository.NewPostgreSQLGroupRepository(db), nil
	case "mysql":
		return groupsRepository.NewMySQLGroupRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initGroupUseCase() (groupsUseCase.GroupUseCase, error) {
	repo, err := c.GroupRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get group repository for group use case: %w", err)
	}

	membership, err := c.MembershipUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership use case for group use case: %w", err)
	}

	return groupsUseCase.NewGroupUseCase(repo, membership), nil
}

func (c *Container) initGroupHandler() (*groupsHTTP.GroupHandler, error) {
	useCase, err := c.GroupUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get group use case for group handler: %w", err)
	}
	return groupsHTTP.NewGroupHandler(useCase, c.Logger()), nil
}
