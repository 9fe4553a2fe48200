// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/keywhiz-core/internal/validation"
)

// CreateSecretRequest contains the parameters for creating or updating a
// secret. The name is extracted from the URL parameter, not the body.
type CreateSecretRequest struct {
	Value             string            `json:"value"` // base64-encoded plaintext
	Description       string            `json:"description,omitempty"`
	Version           string            `json:"version,omitempty"`
	AutoVersion       bool              `json:"auto_version,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	Type              string            `json:"type,omitempty"`
	GenerationOptions map[string]string `json:"generation_options,omitempty"`
}

// Validate checks if the create secret request is valid.
func (r *CreateSecretRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64,
		),
	)
}
