// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/base64"
	"time"

	secretsDomain "github.com/allisson/keywhiz-core/internal/secrets/domain"
)

// SecretResponse represents a secret in API responses.
// SECURITY: Value carries base64-encoded plaintext and is only populated on
// GET responses; create/list/delete responses never include it.
type SecretResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Type        string            `json:"type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Version     string            `json:"version"`
	Value       string            `json:"value,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	CreatedBy   string            `json:"created_by"`
	UpdatedAt   time.Time         `json:"updated_at"`
	UpdatedBy   string            `json:"updated_by"`
}

// MapSecretToResponse converts a domain secret to an API response without
// its plaintext value, used for create/delete confirmations.
func MapSecretToResponse(secret *secretsDomain.Secret) SecretResponse {
	return SecretResponse{
		ID:          secret.Series.ID,
		Name:        secret.Series.Name,
		Description: secret.Series.Description,
		Type:        secret.Series.Type,
		Metadata:    secret.Series.Metadata,
		Version:     secret.Content.Version,
		CreatedAt:   secret.Series.CreatedAt,
		CreatedBy:   secret.Series.CreatedBy,
		UpdatedAt:   secret.Content.UpdatedAt,
		UpdatedBy:   secret.Content.UpdatedBy,
	}
}

// MapSecretToGetResponse converts a domain secret to an API response
// including its decrypted plaintext, base64-encoded.
func MapSecretToGetResponse(secret *secretsDomain.Secret, plaintext []byte) SecretResponse {
	response := MapSecretToResponse(secret)
	response.Value = base64.StdEncoding.EncodeToString(plaintext)
	return response
}
