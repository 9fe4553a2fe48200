// Package dto defines request/response payloads for the groups HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/keywhiz-core/internal/validation"
)

// CreateGroupRequest is the payload for POST /v1/groups.
type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks the request fields.
func (r CreateGroupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank, customValidation.NoWhitespace),
	)
}
