package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"institute-backend/internal/shared/response"
	"institute-backend/pkg/jwt"
)

// AuthMiddleware authenticates admin API requests. It accepts either a
// Bearer token (API clients) or the session cookie set by the admin
// login page, so the editor UI and scripted access share one gate.
func AuthMiddleware(manager *jwt.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie(cookieName); err == nil {
				token = cookie
			}
		}

		if token == "" {
			response.Unauthorized(c, "missing credentials")
			c.Abort()
			return
		}

		claims, err := manager.ValidateToken(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
