// Package http provides HTTP handlers for wiring the ACL graph: enrolling
// clients into groups and granting groups access to secret series
// (spec.md §4.6, C6 MembershipStore). These routes are OperatorUser only.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/keywhiz-core/internal/httputil"
	"github.com/allisson/keywhiz-core/internal/membership/http/dto"
	membershipUseCase "github.com/allisson/keywhiz-core/internal/membership/usecase"
	customValidation "github.com/allisson/keywhiz-core/internal/validation"
)

// MembershipHandler handles HTTP requests for ACL graph edge management.
type MembershipHandler struct {
	membershipUseCase membershipUseCase.MembershipUseCase
	logger            *slog.Logger
}

// NewMembershipHandler creates a new membership handler.
func NewMembershipHandler(
	membershipUseCase membershipUseCase.MembershipUseCase,
	logger *slog.Logger,
) *MembershipHandler {
	return &MembershipHandler{membershipUseCase: membershipUseCase, logger: logger}
}

// EnrollHandler adds a client to a group.
// POST /v1/memberships/enroll
func (h *MembershipHandler) EnrollHandler(c *gin.Context) {
	req, ok := h.bindClientGroup(c)
	if !ok {
		return
	}

	if err := h.membershipUseCase.Enroll(c.Request.Context(), req.ClientID, req.GroupID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// EvictHandler removes a client from a group.
// POST /v1/memberships/evict
func (h *MembershipHandler) EvictHandler(c *gin.Context) {
	req, ok := h.bindClientGroup(c)
	if !ok {
		return
	}

	if err := h.membershipUseCase.Evict(c.Request.Context(), req.ClientID, req.GroupID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// AllowHandler grants a group access to a secret series.
// POST /v1/memberships/allow
func (h *MembershipHandler) AllowHandler(c *gin.Context) {
	req, ok := h.bindGroupSeries(c)
	if !ok {
		return
	}

	if err := h.membershipUseCase.Allow(c.Request.Context(), req.GroupID, req.SeriesID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// DisallowHandler revokes a group's access to a secret series.
// POST /v1/memberships/disallow
func (h *MembershipHandler) DisallowHandler(c *gin.Context) {
	req, ok := h.bindGroupSeries(c)
	if !ok {
		return
	}

	if err := h.membershipUseCase.Disallow(c.Request.Context(), req.GroupID, req.SeriesID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *MembershipHandler) bindClientGroup(c *gin.Context) (dto.ClientGroupRequest, bool) {
	var req dto.ClientGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return req, false
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return req, false
	}
	return req, true
}

func (h *MembershipHandler) bindGroupSeries(c *gin.Context) (dto.GroupSeriesRequest, bool) {
	var req dto.GroupSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return req, false
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return req, false
	}
	return req, true
}
