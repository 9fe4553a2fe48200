package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/keywhiz-core/internal/auth/domain"
	clientsUseCase "github.com/allisson/keywhiz-core/internal/clients/usecase"
	apperrors "github.com/allisson/keywhiz-core/internal/errors"
	"github.com/allisson/keywhiz-core/internal/httputil"
)

// OperatorHeader carries the operator's asserted username for human-facing
// routes, set by a session-terminating proxy in front of this service. The
// core never re-authenticates it (spec.md §4.8).
const OperatorHeader = "X-Operator-User"

// AuthenticationMiddleware resolves the request's Principal (C8) and stores
// it in the request context for downstream handlers.
//
// An mTLS client certificate's CN is looked up against clients.Client; a
// match with Automation=true resolves an AutomationClient principal. In its
// absence, OperatorHeader resolves an OperatorUser principal for
// human-facing admin routes. Neither present is 401 Unauthorized.
func AuthenticationMiddleware(clientUseCase clientsUseCase.ClientUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cn := peerCommonName(c); cn != "" {
			client, err := clientUseCase.GetByName(c.Request.Context(), cn)
			if err != nil {
				logger.Debug("authentication failed: no client for certificate CN",
					slog.String("cn", cn), slog.Any("error", err))
				httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
				c.Abort()
				return
			}
			if !client.Automation {
				logger.Debug("authentication failed: certificate CN names a non-automation client",
					slog.String("cn", cn))
				httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
				c.Abort()
				return
			}

			principal := authDomain.NewAutomationClient(client.Name, client.ID)
			ctx := WithPrincipal(c.Request.Context(), principal)
			c.Request = c.Request.WithContext(ctx)
			c.Next()
			return
		}

		if operator := c.GetHeader(OperatorHeader); operator != "" {
			principal := authDomain.NewOperatorUser(operator)
			ctx := WithPrincipal(c.Request.Context(), principal)
			c.Request = c.Request.WithContext(ctx)
			c.Next()
			return
		}

		logger.Debug("authentication failed: no client certificate or operator header")
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
		c.Abort()
	}
}

// RequireAutomationClient gates a route to AutomationClient principals only,
// per spec.md §4.8's boundary-check requirement for create/delete/read-ciphertext.
func RequireAutomationClient(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok || !principal.IsAutomationClient() {
			logger.Debug("authorization failed: route requires an automation client principal")
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireOperatorUser gates a route to OperatorUser principals only, for the
// human-facing ACL administration routes (POST /v1/clients, /v1/groups,
// /v1/memberships/*).
func RequireOperatorUser(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok || principal.IsAutomationClient() {
			logger.Debug("authorization failed: route requires an operator user principal")
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}
		c.Next()
	}
}

// peerCommonName extracts the CN of the client certificate presented on the
// underlying mTLS connection, or "" if the request was not made over TLS or
// carried no verified client certificate.
func peerCommonName(c *gin.Context) string {
	if c.Request.TLS == nil || len(c.Request.TLS.PeerCertificates) == 0 {
		return ""
	}
	return c.Request.TLS.PeerCertificates[0].Subject.CommonName
}
