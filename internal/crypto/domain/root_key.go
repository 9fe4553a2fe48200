package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/allisson/keywhiz-core/internal/config"
)

// RootKey represents the single cryptographic root key from which every
// secret's content key is derived via HKDF. Must be 32 bytes (256 bits) and
// provisioned out of band via KMS or environment variables. The Key field is
// sensitive and should be zeroed after use.
type RootKey struct {
	ID  string // the "kid" tag recorded alongside every envelope encrypted with this key
	Key []byte // raw 32-byte root key material
}

// RootKeyChain manages a collection of root keys with one designated as
// active. Historical keys remain available so envelopes tagged with an older
// kid can still be decrypted after rotation.
type RootKeyChain struct {
	activeID string   // kid used to derive content keys for new envelopes
	keys     sync.Map // kid -> *RootKey
}

// ActiveRootKeyID returns the kid of the currently active root key.
func (r *RootKeyChain) ActiveRootKeyID() string {
	return r.activeID
}

// Get retrieves a root key from the chain by its kid.
func (r *RootKeyChain) Get(id string) (*RootKey, bool) {
	if rootKey, ok := r.keys.Load(id); ok {
		return rootKey.(*RootKey), ok
	}
	return nil, false
}

// Close securely zeros all root keys from memory, clears the chain, and
// resets the active ID.
func (r *RootKeyChain) Close() {
	r.keys.Range(func(key, value interface{}) bool {
		if rootKey, ok := value.(*RootKey); ok {
			Zero(rootKey.Key)
		}
		return true
	})
	r.activeID = ""
	r.keys.Clear()
}

// LoadRootKeyChainFromEnv loads root keys from ROOT_KEYS and
// ACTIVE_ROOT_KEY_ID environment variables. Keys must be in format
// "id:base64key" (comma-separated) and exactly 32 bytes when decoded.
func LoadRootKeyChainFromEnv() (*RootKeyChain, error) {
	raw := os.Getenv("ROOT_KEYS")
	if raw == "" {
		return nil, ErrRootKeysNotSet
	}

	active := os.Getenv("ACTIVE_ROOT_KEY_ID")
	if active == "" {
		return nil, ErrActiveRootKeyIDNotSet
	}

	rkc := &RootKeyChain{activeID: active}

	parts := strings.SplitSeq(raw, ",")
	for part := range parts {
		p := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(p) != 2 {
			rkc.Close()
			return nil, fmt.Errorf("%w: %q", ErrInvalidRootKeysFormat, part)
		}
		id := p[0]
		key, err := base64.StdEncoding.DecodeString(p[1])
		if err != nil {
			rkc.Close()
			return nil, fmt.Errorf("%w for %s: %v", ErrInvalidRootKeyBase64, id, err)
		}
		if len(key) != 32 {
			Zero(key)
			rkc.Close()
			return nil, fmt.Errorf(
				"%w: root key %s must be 32 bytes, got %d",
				ErrInvalidKeySize,
				id,
				len(key),
			)
		}
		keyCopy := make([]byte, len(key))
		copy(keyCopy, key)
		rkc.keys.Store(id, &RootKey{ID: id, Key: keyCopy})
		Zero(key)
	}

	if _, ok := rkc.Get(active); !ok {
		rkc.Close()
		return nil, fmt.Errorf("%w: ACTIVE_ROOT_KEY_ID=%s", ErrActiveRootKeyNotFound, active)
	}

	return rkc, nil
}

// KMSService defines the interface for KMS operations required by
// LoadRootKeyChain. Implemented by crypto/service.KMSService.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}

// KMSKeeper defines the interface for KMS decrypt operations.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// maskKeyURI masks sensitive components of a KMS key URI for secure logging.
func maskKeyURI(uri string) string {
	if uri == "" {
		return ""
	}

	parts := strings.SplitN(uri, "://", 2)
	if len(parts) != 2 {
		return "***"
	}

	scheme := parts[0]
	remainder := parts[1]

	if scheme == "base64key" {
		return scheme + "://***"
	}

	switch scheme {
	case "gcpkms":
		pathParts := strings.Split(remainder, "/")
		for i := range pathParts {
			if i%2 == 1 {
				pathParts[i] = "***"
			}
		}
		return scheme + "://" + strings.Join(pathParts, "/")
	case "awskms":
		queryParts := strings.SplitN(remainder, "?", 2)
		masked := scheme + "://***"
		if len(queryParts) == 2 {
			masked += "?" + queryParts[1]
		}
		return masked
	case "azurekeyvault", "hashivault":
		return scheme + "://***"
	default:
		return scheme + "://***"
	}
}

// loadRootKeyChainFromKMS loads and decrypts root keys from ROOT_KEYS using
// KMS. ROOT_KEYS contains KMS-encrypted keys in format "id:base64ciphertext".
func loadRootKeyChainFromKMS(
	ctx context.Context,
	cfg *config.Config,
	kmsService KMSService,
	logger *slog.Logger,
) (*RootKeyChain, error) {
	raw := os.Getenv("ROOT_KEYS")
	if raw == "" {
		return nil, ErrRootKeysNotSet
	}

	active := os.Getenv("ACTIVE_ROOT_KEY_ID")
	if active == "" {
		return nil, ErrActiveRootKeyIDNotSet
	}

	maskedURI := maskKeyURI(cfg.KMSKeyURI)
	logger.Info("opening KMS keeper",
		slog.String("kms_provider", cfg.KMSProvider),
		slog.String("kms_key_uri", maskedURI),
	)

	keeper, err := kmsService.OpenKeeper(ctx, cfg.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKMSOpenKeeperFailed, err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Error("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	rkc := &RootKeyChain{activeID: active}

	parts := strings.SplitSeq(raw, ",")
	for part := range parts {
		p := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(p) != 2 {
			rkc.Close()
			return nil, fmt.Errorf("%w: %q", ErrInvalidRootKeysFormat, part)
		}
		id := p[0]

		ciphertext, err := base64.StdEncoding.DecodeString(p[1])
		if err != nil {
			rkc.Close()
			return nil, fmt.Errorf("%w for %s: %v", ErrInvalidRootKeyBase64, id, err)
		}

		logger.Info("decrypting root key with KMS", slog.String("root_key_id", id))

		key, err := keeper.Decrypt(ctx, ciphertext)
		Zero(ciphertext)
		if err != nil {
			rkc.Close()
			return nil, fmt.Errorf("%w for root key %s: %v", ErrKMSDecryptionFailed, id, err)
		}

		if len(key) != 32 {
			Zero(key)
			rkc.Close()
			return nil, fmt.Errorf(
				"%w: root key %s must be 32 bytes, got %d",
				ErrInvalidKeySize,
				id,
				len(key),
			)
		}

		rkc.keys.Store(id, &RootKey{ID: id, Key: key})
	}

	if _, ok := rkc.Get(active); !ok {
		rkc.Close()
		return nil, fmt.Errorf("%w: ACTIVE_ROOT_KEY_ID=%s", ErrActiveRootKeyNotFound, active)
	}

	logger.Info("root key chain loaded successfully from KMS",
		slog.String("active_root_key_id", active),
	)

	return rkc, nil
}

// LoadRootKeyChain loads root keys with auto-detection for KMS or plaintext
// mode. If cfg.KMSProvider is set, ROOT_KEYS is decrypted via KMS; otherwise
// ROOT_KEYS is read as plaintext base64-encoded keys.
func LoadRootKeyChain(
	ctx context.Context,
	cfg *config.Config,
	kmsService KMSService,
	logger *slog.Logger,
) (*RootKeyChain, error) {
	if cfg.KMSProvider != "" && cfg.KMSKeyURI == "" {
		return nil, ErrKMSKeyURINotSet
	}
	if cfg.KMSKeyURI != "" && cfg.KMSProvider == "" {
		return nil, ErrKMSProviderNotSet
	}

	if cfg.KMSProvider != "" {
		logger.Info("loading root key chain in KMS mode", slog.String("kms_provider", cfg.KMSProvider))
		return loadRootKeyChainFromKMS(ctx, cfg, kmsService, logger)
	}

	logger.Info("loading root key chain in plaintext mode")
	return LoadRootKeyChainFromEnv()
}
