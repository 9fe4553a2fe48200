package dto

import (
	"time"

	clientsDomain "github.com/allisson/keywhiz-core/internal/clients/domain"
)

// ClientResponse is the JSON representation of a clients.Client row.
type ClientResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Automation  bool      `json:"automation"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by"`
	UpdatedAt   time.Time `json:"updated_at"`
	UpdatedBy   string    `json:"updated_by"`
}

// MapClientToResponse converts a domain Client to its response shape.
func MapClientToResponse(client *clientsDomain.Client) ClientResponse {
	return ClientResponse{
		ID:          client.ID,
		Name:        client.Name,
		Description: client.Description,
		Automation:  client.Automation,
		CreatedAt:   client.CreatedAt,
		CreatedBy:   client.CreatedBy,
		UpdatedAt:   client.UpdatedAt,
		UpdatedBy:   client.UpdatedBy,
	}
}

// ListClientsResponse wraps a slice of clients for the list endpoint.
type ListClientsResponse struct {
	Data []ClientResponse `json:"data"`
}

// MapClientsToListResponse converts a slice of domain Clients to the list response shape.
func MapClientsToListResponse(clients []clientsDomain.Client) ListClientsResponse {
	data := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		data = append(data, MapClientToResponse(&clients[i]))
	}
	return ListClientsResponse{Data: data}
}
