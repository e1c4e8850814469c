package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tally/internal/infrastructure/auth"
	"tally/internal/shared/constants"
	"tally/internal/shared/logger"
	"tally/internal/shared/utils"
)

// AuthMiddleware gates routes behind a verified token. Verification is a
// pure signature and expiry check; whether the backing session still
// exists is only consulted on the refresh path.
type AuthMiddleware struct {
	issuer *auth.TokenIssuer
	logger logger.Interface
}

func NewAuthMiddleware(issuer *auth.TokenIssuer, log logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		issuer: issuer,
		logger: log,
	}
}

// RequireAuth accepts a valid access token and stores the caller's
// identity and role claim on the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.verify(c, auth.TokenTypeAccess)
		if !ok {
			return
		}

		c.Set(constants.ContextKeyAccountID, claims.Subject)
		c.Set(constants.ContextKeyRole, string(claims.Permissions))

		c.Next()
	}
}

// RequireRefreshToken accepts a valid refresh token and stores the token
// and origin ids it carries. The handler still has to match the token id
// against an ACTIVE session row.
func (m *AuthMiddleware) RequireRefreshToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.verify(c, auth.TokenTypeRefresh)
		if !ok {
			return
		}

		c.Set(constants.ContextKeyAccountID, claims.Subject)
		c.Set(constants.ContextKeyTokenID, claims.TokenID)
		c.Set(constants.ContextKeyOriginID, claims.OriginID)
		c.Set(constants.ContextKeyRole, string(claims.Permissions))

		c.Next()
	}
}

func (m *AuthMiddleware) verify(c *gin.Context, tokenType auth.TokenType) (*auth.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
		c.Abort()
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
		c.Abort()
		return nil, false
	}

	claims, err := m.issuer.VerifyOfType(parts[1], tokenType)
	if err != nil {
		m.logger.Warnw("failed to verify token", "error", err)
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		c.Abort()
		return nil, false
	}

	return claims, true
}
