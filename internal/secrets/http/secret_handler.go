// Package http provides HTTP handlers for secret management operations.
// Secrets are encrypted at rest using envelope encryption and can be versioned.
package http

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	aclUseCase "github.com/allisson/keywhiz-core/internal/acl/usecase"
	authHTTP "github.com/allisson/keywhiz-core/internal/auth/http"
	cryptoService "github.com/allisson/keywhiz-core/internal/crypto/service"
	apperrors "github.com/allisson/keywhiz-core/internal/errors"
	"github.com/allisson/keywhiz-core/internal/httputil"
	"github.com/allisson/keywhiz-core/internal/sanitize"
	secretsDomain "github.com/allisson/keywhiz-core/internal/secrets/domain"
	"github.com/allisson/keywhiz-core/internal/secrets/http/dto"
	secretsUseCase "github.com/allisson/keywhiz-core/internal/secrets/usecase"
	customValidation "github.com/allisson/keywhiz-core/internal/validation"
)

// SecretHandler handles HTTP requests for secret management operations. It
// coordinates authorization (via AclEngine) and encryption (via
// Cryptographer) on top of the SecretController.
type SecretHandler struct {
	secretController secretsUseCase.SecretController
	aclEngine        aclUseCase.AclEngine
	cryptographer    cryptoService.Cryptographer
	logger           *slog.Logger
}

// NewSecretHandler creates a new secret handler with required dependencies.
func NewSecretHandler(
	secretController secretsUseCase.SecretController,
	aclEngine aclUseCase.AclEngine,
	cryptographer cryptoService.Cryptographer,
	logger *slog.Logger,
) *SecretHandler {
	return &SecretHandler{
		secretController: secretController,
		aclEngine:        aclEngine,
		cryptographer:    cryptographer,
		logger:           logger,
	}
}

// CreateHandler creates a new secret revision.
// POST /v1/secrets/:name - AutomationClient only, gated by route middleware.
// Returns 201 Created with secret metadata (excludes plaintext value).
func (h *SecretHandler) CreateHandler(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("name"), "/")
	if err := validation.Validate(name, validation.Required, customValidation.SecretName); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var req dto.CreateSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	plaintext, err := decodeBase64Value(req.Value)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	input := secretsUseCase.NewCreateSecretInput(name, plaintext, principal.Name()).
		WithDescription(req.Description).
		WithMetadata(req.Metadata).
		WithType(req.Type).
		WithGenerationOptions(req.GenerationOptions)
	switch {
	case req.AutoVersion:
		input = input.WithAutoVersion()
	case req.Version != "":
		input = input.WithVersion(req.Version)
	}

	secret, err := h.secretController.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapSecretToResponse(secret))
}

// GetHandler retrieves and decrypts a secret by name, optionally by version.
// GET /v1/secrets/:name?version=V - AutomationClient only; 404 on deny or
// absence, indistinguishable (spec.md §7).
func (h *SecretHandler) GetHandler(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("name"), "/")
	if name == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("name cannot be empty"), h.logger)
		return
	}

	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}
	clientID, _ := principal.ClientID()

	secret, err := h.aclEngine.GetSecretForClient(c.Request.Context(), clientID, name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	version := c.Query("version")
	if version != "" && version != secret.Content.Version {
		secret, err = h.secretController.GetByNameAndVersion(c.Request.Context(), name, version)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
	}

	plaintext, err := secret.Decrypt(h.cryptographer)
	if err != nil {
		h.logger.Error("secret content failed integrity check", slog.Any("error", err), slog.String("name", name))
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSecretToGetResponse(secret, plaintext))
}

// DeleteHandler deletes a secret series or a single version.
// DELETE /v1/secrets/:name?version=V - AutomationClient only. Deletes the
// whole series when version is omitted, a single revision otherwise.
// Returns 204 No Content.
func (h *SecretHandler) DeleteHandler(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("name"), "/")
	if name == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("name cannot be empty"), h.logger)
		return
	}

	var err error
	if version := c.Query("version"); version != "" {
		err = h.secretController.DeleteVersion(c.Request.Context(), name, version)
	} else {
		err = h.secretController.DeleteSeries(c.Request.Context(), name)
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListHandler returns the sanitized secrets visible to the calling
// principal: AutomationClient sees only series its groups may access;
// OperatorUser sees every series (spec.md §4.7/§4.9).
// GET /v1/secrets
func (h *SecretHandler) ListHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if clientID, isAutomation := principal.ClientID(); isAutomation {
		secrets, err := h.aclEngine.SecretsFor(c.Request.Context(), clientID)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		c.JSON(http.StatusOK, dto.MapSanitizedSecretsToListResponse(secrets))
		return
	}

	all, err := h.secretController.ListAll(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	latestPerSeries := latestRevisionPerSeries(all)
	sanitized, err := sanitize.SanitizeAll(latestPerSeries)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapSanitizedSecretsToListResponse(sanitized))
}

func decodeBase64Value(value string) ([]byte, error) {
	plaintext, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 value: %w", err)
	}
	return plaintext, nil
}

// latestRevisionPerSeries reduces a ListAll result (every content row of
// every series, ordered by series id then content id ascending) to one row
// per series: the highest content id, preserving series-id order.
func latestRevisionPerSeries(secrets []secretsDomain.Secret) []secretsDomain.Secret {
	latest := make(map[int64]secretsDomain.Secret)
	var order []int64
	for _, secret := range secrets {
		if _, ok := latest[secret.Series.ID]; !ok {
			order = append(order, secret.Series.ID)
		}
		current, ok := latest[secret.Series.ID]
		if !ok || secret.Content.ID > current.Content.ID {
			latest[secret.Series.ID] = secret
		}
	}

	result := make([]secretsDomain.Secret, 0, len(order))
	for _, seriesID := range order {
		result = append(result, latest[seriesID])
	}
	return result
}
