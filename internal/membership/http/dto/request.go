// Package dto defines request payloads for the membership HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"
)

// ClientGroupRequest is the payload for enroll/evict: a client↔group edge.
type ClientGroupRequest struct {
	ClientID int64 `json:"client_id"`
	GroupID  int64 `json:"group_id"`
}

// Validate checks the request fields.
func (r ClientGroupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ClientID, validation.Required),
		validation.Field(&r.GroupID, validation.Required),
	)
}

// GroupSeriesRequest is the payload for allow/disallow: a group↔series edge.
type GroupSeriesRequest struct {
	GroupID  int64 `json:"group_id"`
	SeriesID int64 `json:"series_id"`
}

// Validate checks the request fields.
func (r GroupSeriesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.GroupID, validation.Required),
		validation.Field(&r.SeriesID, validation.Required),
	)
}
