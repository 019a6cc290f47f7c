package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mediawatch/labeling-api/api/types"
	"github.com/mediawatch/labeling-api/internal/models"
	"github.com/mediawatch/labeling-api/internal/services/auth"
)

const claimsKey = "auth_claims"

// Authenticate verifies the bearer token and attaches the claims to the
// request context
func Authenticate(authService auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Missing or malformed authorization header",
			})
			return
		}

		claims, err := authService.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAdmin rejects requests whose authenticated principal is not an admin
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok || claims.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Admin access required",
			})
			return
		}
		c.Next()
	}
}

// GetClaims returns the authenticated principal's claims, if any
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}
