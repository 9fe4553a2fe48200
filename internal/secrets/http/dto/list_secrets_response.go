// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	"github.com/allisson/keywhiz-core/internal/sanitize"
)

// SanitizedSecretResponse is the wire shape of a sanitized secret listing
// entry: never carries ciphertext or plaintext.
type SanitizedSecretResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Type        string            `json:"type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Version     string            `json:"version"`
	ContentSize int               `json:"content_size"`
	CreatedAt   time.Time         `json:"created_at"`
	CreatedBy   string            `json:"created_by"`
	UpdatedAt   time.Time         `json:"updated_at"`
	UpdatedBy   string            `json:"updated_by"`
}

// ListSecretsResponse represents a sanitized list of secrets in API responses.
type ListSecretsResponse struct {
	Data []SanitizedSecretResponse `json:"data"`
}

// MapSanitizedSecretsToListResponse converts sanitized secrets to a list response.
func MapSanitizedSecretsToListResponse(secrets []sanitize.SanitizedSecret) ListSecretsResponse {
	data := make([]SanitizedSecretResponse, 0, len(secrets))
	for _, secret := range secrets {
		data = append(data, SanitizedSecretResponse{
			ID:          secret.ID,
			Name:        secret.Name,
			Description: secret.Description,
			Type:        secret.Type,
			Metadata:    secret.Metadata,
			Version:     secret.Version,
			ContentSize: secret.ContentSize,
			CreatedAt:   secret.CreatedAt,
			CreatedBy:   secret.CreatedBy,
			UpdatedAt:   secret.UpdatedAt,
			UpdatedBy:   secret.UpdatedBy,
		})
	}
	return ListSecretsResponse{Data: data}
}
