package service

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/hkdf"

	cryptoDomain "github.com/allisson/keywhiz-core/internal/crypto/domain"
)

// hkdfInfo is the fixed HKDF info parameter for content-key derivation,
// distinguishing this key space from anything else that might derive from
// the same root key in the future.
const hkdfInfo = "keywhiz-core/secret-content-key/v1"

// Cryptographer seals and opens secret content envelopes. A single root key
// chain backs every secret; the AES-256-GCM key actually used to seal a given
// secret's content is derived on demand via HKDF-SHA256, salted with the
// secret's name, and is never persisted.
type Cryptographer interface {
	// Seal derives the content key for name under the active root key and
	// encrypts content with it, binding name as AAD. Returns an envelope
	// string: base64(nonce || ciphertext || tag) "." kid.
	Seal(name string, content []byte) (string, error)

	// Open parses envelope, derives the content key for name under the kid
	// recorded in the envelope, and decrypts. Returns ErrCryptoIntegrity if
	// the name, kid, or ciphertext don't match what Seal produced, and
	// ErrRootKeyNotFound if the envelope's kid is not in the root key chain.
	Open(name string, envelope string) ([]byte, error)
}

// cryptographer implements Cryptographer using an AEADManager and a root key chain.
type cryptographer struct {
	aeadManager AEADManager
	rootKeys    *cryptoDomain.RootKeyChain
}

// NewCryptographer creates a Cryptographer backed by the given root key chain.
func NewCryptographer(aeadManager AEADManager, rootKeys *cryptoDomain.RootKeyChain) Cryptographer {
	return &cryptographer{aeadManager: aeadManager, rootKeys: rootKeys}
}

// deriveContentKey runs HKDF-SHA256 over the root key material, salted with
// the secret name, to produce a 32-byte AES-256-GCM key.
func deriveContentKey(rootKey []byte, name string) ([]byte, error) {
	reader := hkdf.New(sha256.New, rootKey, []byte(name), []byte(hkdfInfo))
	key := make([]byte, 32)
	if _, err := reader.Read(key); err != nil {
		return nil, fmt.Errorf("failed to derive content key: %w", err)
	}
	return key, nil
}

func (c *cryptographer) Seal(name string, content []byte) (string, error) {
	kid := c.rootKeys.ActiveRootKeyID()
	rootKey, ok := c.rootKeys.Get(kid)
	if !ok {
		return "", cryptoDomain.ErrActiveRootKeyNotFound
	}

	contentKey, err := deriveContentKey(rootKey.Key, name)
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(contentKey)

	cipher, err := c.aeadManager.CreateCipher(contentKey, cryptoDomain.AESGCM)
	if err != nil {
		return "", err
	}

	ciphertext, nonce, err := cipher.Encrypt(content, []byte(name))
	if err != nil {
		return "", fmt.Errorf("failed to seal secret content: %w", err)
	}

	payload := append(append([]byte{}, nonce...), ciphertext...)
	return base64.StdEncoding.EncodeToString(payload) + "." + kid, nil
}

func (c *cryptographer) Open(name string, envelope string) ([]byte, error) {
	kid, payload, err := parseEnvelope(envelope)
	if err != nil {
		return nil, err
	}

	rootKey, ok := c.rootKeys.Get(kid)
	if !ok {
		return nil, fmt.Errorf("%w: kid %s", cryptoDomain.ErrRootKeyNotFound, kid)
	}

	contentKey, err := deriveContentKey(rootKey.Key, name)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(contentKey)

	cipher, err := c.aeadManager.CreateCipher(contentKey, cryptoDomain.AESGCM)
	if err != nil {
		return nil, err
	}

	nonceSize := 12
	if len(payload) < nonceSize {
		return nil, cryptoDomain.ErrMalformedEnvelope
	}
	nonce, ciphertext := payload[:nonceSize], payload[nonceSize:]

	plaintext, err := cipher.Decrypt(ciphertext, nonce, []byte(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrCryptoIntegrity, err)
	}
	return plaintext, nil
}

// parseEnvelope splits "base64(nonce||ciphertext) . kid" into its kid and
// decoded payload.
func parseEnvelope(envelope string) (kid string, payload []byte, err error) {
	idx := strings.LastIndex(envelope, ".")
	if idx < 0 {
		return "", nil, cryptoDomain.ErrMalformedEnvelope
	}
	encoded, kid := envelope[:idx], envelope[idx+1:]
	if kid == "" {
		return "", nil, cryptoDomain.ErrMalformedEnvelope
	}
	payload, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", cryptoDomain.ErrMalformedEnvelope, err)
	}
	return kid, payload, nil
}

// EnvelopeCiphertextLength returns the length of the plaintext encoded in
// envelope (nonce and GCM tag excluded), without decrypting it. Used by the
// sanitizer to report a secret's content length.
func EnvelopeCiphertextLength(envelope string) (int, error) {
	_, payload, err := parseEnvelope(envelope)
	if err != nil {
		return 0, err
	}
	const nonceSize = 12
	const tagSize = 16
	if len(payload) < nonceSize+tagSize {
		return 0, cryptoDomain.ErrMalformedEnvelope
	}
	return len(payload) - nonceSize - tagSize, nil
}
