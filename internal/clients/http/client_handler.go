// Package http provides HTTP handlers for client administration.
// These routes are OperatorUser only (spec.md §4.8): wiring the ACL graph
// is a human-operated admin action, never performed by an automation client.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/keywhiz-core/internal/auth/http"
	clientsDomain "github.com/allisson/keywhiz-core/internal/clients/domain"
	"github.com/allisson/keywhiz-core/internal/clients/http/dto"
	clientsUseCase "github.com/allisson/keywhiz-core/internal/clients/usecase"
	"github.com/allisson/keywhiz-core/internal/httputil"
	customValidation "github.com/allisson/keywhiz-core/internal/validation"
)

// ClientHandler handles HTTP requests for client administration.
type ClientHandler struct {
	clientUseCase clientsUseCase.ClientUseCase
	logger        *slog.Logger
}

// NewClientHandler creates a new client handler.
func NewClientHandler(clientUseCase clientsUseCase.ClientUseCase, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{clientUseCase: clientUseCase, logger: logger}
}

// CreateHandler creates a new client.
// POST /v1/clients
func (h *ClientHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	input := clientsDomain.CreateClientInput{
		Name:        req.Name,
		Description: req.Description,
		Automation:  req.Automation,
		Creator:     principal.Name(),
	}

	client, err := h.clientUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapClientToResponse(client))
}

// GetHandler returns a client by id.
// GET /v1/clients/:id
func (h *ClientHandler) GetHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	client, err := h.clientUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapClientToResponse(client))
}

// ListHandler returns every client.
// GET /v1/clients
func (h *ClientHandler) ListHandler(c *gin.Context) {
	clients, err := h.clientUseCase.ListAll(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapClientsToListResponse(clients))
}

// DeleteHandler deletes a client and its memberships.
// DELETE /v1/clients/:id
func (h *ClientHandler) DeleteHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.clientUseCase.Delete(c.Request.Context(), id); err != nil {
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
