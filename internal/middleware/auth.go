// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/funkoshop/api/internal/models"
	"github.com/funkoshop/api/internal/utils"
)

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, utils.APIResponse{
		OK:     false,
		Errors: &utils.APIError{Code: "UNAUTHORIZED", Message: message},
	})
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func setClaims(c *gin.Context, claims *utils.JWTClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("roles", claims.Roles)
}

func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "authentication required")
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, role := range utils.GetRolesFromContext(c) {
			if role == models.RoleAdmin {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, utils.APIResponse{
			OK:     false,
			Errors: &utils.APIError{Code: "FORBIDDEN", Message: "admin access required"},
		})
	}
}

func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := utils.ValidateJWT(token); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}
