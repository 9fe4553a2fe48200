// Package domain defines the Group entity (spec.md §3): a named collection
// that is simultaneously a set of clients and a set of secret series.
// Access is the cross-product of the two sets, evaluated by the AclEngine
// (C7) over the edges persisted in internal/membership.
package domain

import "time"

// Group is a named collection of clients AND of secret series.
type Group struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	CreatedBy   string
	UpdatedAt   time.Time
	UpdatedBy   string
}

// CreateGroupInput contains the parameters for creating a new group.
type CreateGroupInput struct {
	Name        string
	Description string
	Creator     string
}
