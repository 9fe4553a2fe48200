// Package http provides HTTP handlers for group administration.
// These routes are OperatorUser only (spec.md §4.8).
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/keywhiz-core/internal/auth/http"
	groupsDomain "github.com/allisson/keywhiz-core/internal/groups/domain"
	"github.com/allisson/keywhiz-core/internal/groups/http/dto"
	groupsUseCase "github.com/allisson/keywhiz-core/internal/groups/usecase"
	"github.com/allisson/keywhiz-core/internal/httputil"
	customValidation "github.com/allisson/keywhiz-core/internal/validation"
)

// GroupHandler handles HTTP requests for group administration.
type GroupHandler struct {
	groupUseCase groupsUseCase.GroupUseCase
	logger       *slog.Logger
}

// NewGroupHandler creates a new group handler.
func NewGroupHandler(groupUseCase groupsUseCase.GroupUseCase, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{groupUseCase: groupUseCase, logger: logger}
}

// CreateHandler creates a new group.
// POST /v1/groups
func (h *GroupHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	input := groupsDomain.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		Creator:     principal.Name(),
	}

	group, err := h.groupUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapGroupToResponse(group))
}

// GetHandler returns a group by id.
// GET /v1/groups/:id
func (h *GroupHandler) GetHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	group, err := h.groupUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGroupToResponse(group))
}

// ListHandler returns every group.
// GET /v1/groups
func (h *GroupHandler) ListHandler(c *gin.Context) {
	groups, err := h.groupUseCase.ListAll(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGroupsToListResponse(groups))
}

// DeleteHandler deletes a group and its memberships/access grants.
// DELETE /v1/groups/:id
func (h *GroupHandler) DeleteHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.groupUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %w", err)
	}
	return id, nil
}
