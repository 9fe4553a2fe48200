// Package domain defines the Client entity (spec.md §3): a principal
// identified by an X.509 CN, optionally flagged as an automation client
// permitted to call the automation API (create/delete/read-ciphertext).
package domain

import "time"

// Client is a principal identified by an X.509 CN.
type Client struct {
	ID          int64
	Name        string
	Description string
	Automation  bool
	CreatedAt   time.Time
	CreatedBy   string
	UpdatedAt   time.Time
	UpdatedBy   string
}

// CreateClientInput contains the parameters for creating a new client.
type CreateClientInput struct {
	Name        string
	Description string
	Automation  bool
	Creator     string
}
