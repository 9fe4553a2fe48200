package service

import (
	cryptoDomain "github.com/allisson/keywhiz-core/internal/crypto/domain"
)

// AEADManagerService implements the AEADManager interface, acting as a
// factory for AES-256-GCM cipher instances.
type AEADManagerService struct{}

// NewAEADManager creates a new AEADManagerService instance.
func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher creates an AEAD cipher instance for the specified algorithm.
// The key must be exactly 32 bytes (256 bits).
func (am *AEADManagerService) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	if len(key) != 32 {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	switch alg {
	case cryptoDomain.AESGCM:
		return NewAESGCM(key)
	default:
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
}
