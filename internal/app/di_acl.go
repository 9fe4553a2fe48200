package app

import (
	"fmt"

	aclUseCase "github.com/allisson/keywhiz-core/internal/acl/usecase"
)

// AclEngine returns the ACL engine (C7), composed from the membership store
// and the secret controller.
func (c *Container) AclEngine() (aclUseCase.AclEngine, error) {
	var err error
	c.aclEngineInit.Do(func() {
		c.aclEngine, err = c.initAclEngine()
		if err != nil {
			c.initErrors["aclEngine"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["aclEngine"]; exists {
		return nil, storedErr
	}
	return c.aclEngine, nil
}

func (c *Container) initAclEngine() (aclUseCase.AclEngine, error) {
	membership, err := c.MembershipUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership use case for acl engine: %w", err)
	}

	secretController, err := c.SecretController()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret controller for acl engine: %w", err)
	}

	return aclUseCase.NewAclEngine(membership, secretController), nil
}
