package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/domain/dto"
	"github.com/guttosm/inventory-allocator/internal/i18n"
	"github.com/guttosm/inventory-allocator/internal/middleware"
	"github.com/guttosm/inventory-allocator/internal/service"
)

// AuthHandler exchanges API keys for short-lived access tokens.
type AuthHandler struct {
	tokens service.TokenService
	audit  middleware.LogSink
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(tokens service.TokenService, audit middleware.LogSink) *AuthHandler {
	return &AuthHandler{
		tokens: tokens,
		audit:  audit,
	}
}

// IssueToken handles POST /api/auth/token requests.
//
// @Summary      Issue an access token
// @Description  Exchanges an API key (X-API-Key: client:secret) for a JWT carrying the client id and scopes. The body is optional and may narrow the scopes.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        X-API-Key header string true "API key in the form client:secret"
// @Param        request body dto.TokenRequest false "Requested scopes"
// @Success      200 {object} dto.SuccessResponse{data=dto.TokenResponse} "Issued token"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid API key"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - scope not granted"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Router       /api/auth/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	builder := NewResponseBuilder(c)

	client := middleware.GetClaims(c)
	if client == nil {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyAPIKeyRequired, nil)
		return
	}

	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		builder.BindError(err)
		return
	}
	if err := req.Validate(); err != nil {
		builder.BindError(err)
		return
	}

	token, err := h.tokens.Issue(client, req.Scopes)
	if err != nil {
		middleware.AuditLogError(h.audit, c, middleware.ActionIssueToken, "Token request rejected", err, map[string]interface{}{
			"scopes": req.Scopes,
		})
		if errors.Is(err, service.ErrScopeNotGranted) {
			builder.Error(http.StatusForbidden, i18n.ErrKeyScopeNotGranted, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	middleware.AuditLog(h.audit, c, middleware.ActionIssueToken, "Access token issued", map[string]interface{}{
		"scopes":     token.Scopes,
		"expires_in": token.ExpiresIn,
	})
	builder.SuccessOK(token)
}
