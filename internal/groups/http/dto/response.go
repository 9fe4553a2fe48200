package dto

import (
	"time"

	groupsDomain "github.com/allisson/keywhiz-core/internal/groups/domain"
)

// GroupResponse is the JSON representation of a groups.Group row.
type GroupResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by"`
	UpdatedAt   time.Time `json:"updated_at"`
	UpdatedBy   string    `json:"updated_by"`
}

// MapGroupToResponse converts a domain Group to its response shape.
func MapGroupToResponse(group *groupsDomain.Group) GroupResponse {
	return GroupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		CreatedAt:   group.CreatedAt,
		CreatedBy:   group.CreatedBy,
		UpdatedAt:   group.UpdatedAt,
		UpdatedBy:   group.UpdatedBy,
	}
}

// ListGroupsResponse wraps a slice of groups for the list endpoint.
type ListGroupsResponse struct {
	Data []GroupResponse `json:"data"`
}

// MapGroupsToListResponse converts a slice of domain Groups to the list response shape.
func MapGroupsToListResponse(groups []groupsDomain.Group) ListGroupsResponse {
	data := make([]GroupResponse, 0, len(groups))
	for i := range groups {
		data = append(data, MapGroupToResponse(&groups[i]))
	}
	return ListGroupsResponse{Data: data}
}
