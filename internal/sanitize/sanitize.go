// Package sanitize implements the Sanitizer (C9): a redacted projection of
// a Secret safe to return from listing/describe endpoints, carrying neither
// ciphertext nor plaintext (spec.md §4.9).
package sanitize

import (
	"time"

	cryptoService "github.com/allisson/keywhiz-core/internal/crypto/service"
	secretsDomain "github.com/allisson/keywhiz-core/internal/secrets/domain"
)

// SanitizedSecret is the wire-safe projection of a Secret: every field a
// caller may see without needing access to the plaintext or ciphertext.
type SanitizedSecret struct {
	ID          int64
	Name        string
	Description string
	Type        string
	Metadata    map[string]string
	Version     string
	ContentSize int
	CreatedAt   time.Time
	CreatedBy   string
	UpdatedAt   time.Time
	UpdatedBy   string
}

// Sanitize builds a SanitizedSecret from secret without decrypting its
// content. ContentSize is computed from the envelope's encoded length, not
// from the plaintext.
func Sanitize(secret secretsDomain.Secret) (SanitizedSecret, error) {
	size, err := cryptoService.EnvelopeCiphertextLength(secret.Content.EncryptedContent)
	if err != nil {
		return SanitizedSecret{}, err
	}

	return SanitizedSecret{
		ID:          secret.Series.ID,
		Name:        secret.Series.Name,
		Description: secret.Series.Description,
		Type:        secret.Series.Type,
		Metadata:    secret.Series.Metadata,
		Version:     secret.Content.Version,
		ContentSize: size,
		CreatedAt:   secret.Series.CreatedAt,
		CreatedBy:   secret.Series.CreatedBy,
		UpdatedAt:   secret.Content.UpdatedAt,
		UpdatedBy:   secret.Content.UpdatedBy,
	}, nil
}

// SanitizeAll sanitizes a slice of secrets, short-circuiting on the first error.
func SanitizeAll(secrets []secretsDomain.Secret) ([]SanitizedSecret, error) {
	result := make([]SanitizedSecret, 0, len(secrets))
	for _, secret := range secrets {
		sanitized, err := Sanitize(secret)
		if err != nil {
			return nil, err
		}
		result = append(result, sanitized)
	}
	return result, nil
}
