package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"friendbot/companion-api/internal/domain"
	"friendbot/companion-api/internal/infrastructure/auth"
	"friendbot/companion-api/internal/interfaces/httpserver/responses"
	"friendbot/companion-api/internal/utils/platformerrors"
)

const principalContextKey = "principal"

// AuthMiddleware validates the Bearer token on every request and stores
// the resolved principal in the gin context for handlers downstream.
func AuthMiddleware(tokenService *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, ok := bearerToken(c)
		if !ok {
			responses.HandleErrorWithStatus(c, http.StatusUnauthorized, platformerrors.NewError(
				c.Request.Context(),
				platformerrors.LayerRoute,
				platformerrors.ErrorTypeUnauthorized,
				"missing bearer token",
				nil,
				"f1c3f0f1-6f3e-4d6a-9a0b-2f6f0f5f3a91",
			))
			return
		}

		claims, err := tokenService.Validate(c.Request.Context(), rawToken)
		if err != nil {
			responses.HandleErrorWithStatus(c, http.StatusUnauthorized, err)
			return
		}

		c.Set(principalContextKey, domain.Principal{
			UserID:   claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
		})
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// PrincipalFromContext returns the principal stored by AuthMiddleware.
func PrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	value, exists := c.Get(principalContextKey)
	if !exists {
		return domain.Principal{}, false
	}
	principal, ok := value.(domain.Principal)
	return principal, ok
}
