package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/keywhiz-core/internal/crypto/domain"
	cryptoService "github.com/allisson/keywhiz-core/internal/crypto/service"
)

// RootKeyChain returns the root key chain loaded from environment variables
// or, when configured, from a KMS-backed keeper.
func (c *Container) RootKeyChain() (*cryptoDomain.RootKeyChain, error) {
	var err error
	c.rootKeyChainInit.Do(func() {
		c.rootKeyChain, err = c.initRootKeyChain()
		if err != nil {
			c.initErrors["rootKeyChain"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rootKeyChain"]; exists {
		return nil, storedErr
	}
	return c.rootKeyChain, nil
}

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = c.initAEADManager()
	})
	return c.aeadManager
}

// KMSService returns the KMS service used to optionally unwrap the root key chain.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = c.initKMSService()
	})
	return c.kmsService
}

// Cryptographer returns the content cryptographer (C1), built from the AEAD
// manager and the root key chain.
func (c *Container) Cryptographer() (cryptoService.Cryptographer, error) {
	var err error
	c.cryptographerInit.Do(func() {
		c.cryptographer, err = c.initCryptographer()
		if err != nil {
			c.initErrors["cryptographer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cryptographer"]; exists {
		return nil, storedErr
	}
	return c.cryptographer, nil
}

// initRootKeyChain loads the root key chain from environment variables or KMS.
func (c *Container) initRootKeyChain() (*cryptoDomain.RootKeyChain, error) {
	kmsService := c.KMSService()
	logger := c.Logger()

	rootKeyChain, err := cryptoDomain.LoadRootKeyChain(
		context.Background(),
		c.config,
		kmsService,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load root key chain: %w", err)
	}
	return rootKeyChain, nil
}

// initAEADManager creates the AEAD manager service.
func (c *Container) initAEADManager() cryptoService.AEADManager {
	return cryptoService.NewAEADManager()
}

// initKMSService creates the KMS service used to decrypt root keys at rest.
func (c *Container) initKMSService() cryptoService.KMSService {
	return cryptoService.NewKMSService()
}

// initCryptographer wires the AEAD manager and root key chain into the C1 Cryptographer.
func (c *Container) initCryptographer() (cryptoService.Cryptographer, error) {
	rootKeyChain, err := c.RootKeyChain()
	if err != nil {
		return nil, fmt.Errorf("failed to get root key chain for cryptographer: %w", err)
	}
	aeadManager := c.AEADManager()
	return cryptoService.NewCryptographer(aeadManager, rootKeyChain), nil
}
