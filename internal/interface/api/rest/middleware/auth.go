package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mds-registry-api/internal/infrastructure/jwt"
	"mds-registry-api/internal/interface/api/rest/dto"
)

const (
	CtxUserRole = "userRole"
	CtxUserID   = "userID"
	CtxUsername = "username"
)

func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				dto.Error{Error: "missing Authorization header"},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader || strings.TrimSpace(tokenStr) == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				dto.Error{Error: "invalid token format"},
			)
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				dto.Error{Error: "invalid token"},
			)
			return
		}

		c.Set(CtxUserRole, claims.Role)
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)

		c.Next()
	}
}
