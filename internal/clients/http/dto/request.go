// Package dto defines request/response payloads for the clients HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/keywhiz-core/internal/validation"
)

// CreateClientRequest is the payload for POST /v1/clients.
type CreateClientRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Automation  bool   `json:"automation"`
}

// Validate checks the request fields.
func (r CreateClientRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank, customValidation.NoWhitespace),
	)
}
