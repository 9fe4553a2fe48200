package app

import (
	"fmt"

	membershipHTTP "github.com/allisson/keywhiz-core/internal/membership/http"
	membershipRepository "github.com/allisson/keywhiz-core/internal/membership/repository"
	membershipUseCase "github.com/allisson/keywhiz-core/internal/membership/usecase"
)

// MembershipRepository returns the membership repository based on database driver.
func (c *Container) MembershipRepository() (membershipRepository.MembershipRepository, error) {
	var err error
	c.membershipRepoInit.Do(func() {
		c.membershipRepo, err = c.initMembershipRepository()
		if err != nil {
			c.initErrors["membershipRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["membershipRepo"]; exists {
		return nil, storedErr
	}
	return c.membershipRepo, nil
}

// MembershipUseCase returns the membership use case (C6 MembershipStore).
func (c *Container) MembershipUseCase() (membershipUseCase.MembershipUseCase, error) {
	var err error
	c.membershipUseCaseInit.Do(func() {
		c.membershipUseCase, err = c.initMembershipUseCase()
		if err != nil {
			c.initErrors["membershipUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["membershipUseCase"]; exists {
		return nil, storedErr
	}
	return c.membershipUseCase, nil
}

// MembershipHandler returns the HTTP handler for ACL graph edge management.
func (c *Container) MembershipHandler() (*membershipHTTP.MembershipHandler, error) {
	var err error
	c.membershipHandlerInit.Do(func() {
		c.membershipHandler, err = c.initMembershipHandler()
		if err != nil {
			c.initErrors["membershipHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["membershipHandler"]; exists {
		return nil, storedErr
	}
	return c.membershipHandler, nil
}

func (c *Container) initMembershipRepository() (membershipRepository.MembershipRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for membership repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return membershipRepository.NewPostgreSQLMembershipRepository(db), nil
	case "mysql":
		return membershipRepository.NewMySQLMembershipRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initMembershipUseCase() (membershipUseCase.MembershipUseCase, error) {
	repo, err := c.MembershipRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership repository for membership use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for membership use case: %w", err)
	}

	return membershipUseCase.NewMembershipUseCase(repo, txManager), nil
}

func (c *Container) initMembershipHandler() (*membershipHTTP.MembershipHandler, error) {
	useCase, err := c.MembershipUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership use case for membership handler: %w", err)
	}
	return membershipHTTP.NewMembershipHandler(useCase, c.Logger()), nil
}
