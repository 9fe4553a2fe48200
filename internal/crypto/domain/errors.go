// Package domain defines core cryptographic domain models for envelope
// encryption: a single root key, HKDF-derived per-secret content keys, and
// AESGCM as the sole AEAD.
package domain

import (
	"github.com/allisson/keywhiz-core/internal/errors"
)

// Cryptographic operation errors.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the cryptographic key size is invalid (must be 32 bytes).
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates decryption failed due to wrong key or corrupted data.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrRootKeysNotSet indicates the ROOT_KEYS environment variable is not configured.
	ErrRootKeysNotSet = errors.Wrap(errors.ErrInvalidInput, "ROOT_KEYS not set")

	// ErrActiveRootKeyIDNotSet indicates the ACTIVE_ROOT_KEY_ID environment variable is not configured.
	ErrActiveRootKeyIDNotSet = errors.Wrap(errors.ErrInvalidInput, "ACTIVE_ROOT_KEY_ID not set")

	// ErrInvalidRootKeysFormat indicates the ROOT_KEYS format is invalid.
	ErrInvalidRootKeysFormat = errors.Wrap(errors.ErrInvalidInput, "invalid ROOT_KEYS format")

	// ErrInvalidRootKeyBase64 indicates a root key is not valid base64.
	ErrInvalidRootKeyBase64 = errors.Wrap(errors.ErrInvalidInput, "invalid root key base64")

	// ErrActiveRootKeyNotFound indicates the active root key id was not found in the chain.
	ErrActiveRootKeyNotFound = errors.Wrap(errors.ErrInvalidInput, "active root key not found")

	// ErrRootKeyNotFound indicates a root key with the specified kid was not found.
	ErrRootKeyNotFound = errors.Wrap(errors.ErrNotFound, "root key not found")

	// ErrKMSProviderNotSet indicates the KMS_PROVIDER environment variable is not configured.
	ErrKMSProviderNotSet = errors.Wrap(
		errors.ErrInvalidInput,
		"KMS_PROVIDER is required but not configured (use 'localsecrets' for local development)",
	)

	// ErrKMSKeyURINotSet indicates the KMS_KEY_URI environment variable is not configured.
	ErrKMSKeyURINotSet = errors.Wrap(
		errors.ErrInvalidInput,
		"KMS_KEY_URI is required but not configured",
	)

	// ErrKMSDecryptionFailed indicates KMS decryption of root keys failed.
	ErrKMSDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "KMS decryption failed")

	// ErrKMSOpenKeeperFailed indicates opening the KMS keeper failed.
	ErrKMSOpenKeeperFailed = errors.Wrap(errors.ErrInvalidInput, "failed to open KMS keeper")

	// ErrCryptoIntegrity indicates an envelope failed authentication: wrong
	// key, wrong kid, or tampered ciphertext. Never unwrapped to recover
	// partial plaintext. Deliberately NOT wrapped under ErrInvalidInput:
	// spec requires this to surface as 500 + alert, never a 4xx, since an
	// AEAD tag mismatch is never caused by a malformed client request.
	ErrCryptoIntegrity = errors.New("crypto integrity check failed")

	// ErrMalformedEnvelope indicates an envelope string could not be parsed
	// into kid/nonce/ciphertext components.
	ErrMalformedEnvelope = errors.Wrap(errors.ErrInvalidInput, "malformed envelope")
)
