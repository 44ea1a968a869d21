package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"institute-backend/pkg/jwt"
)

// AdminPageGate protects the server-rendered admin pages. Unlike the API
// gate it never returns a JSON 401: an unauthenticated visitor gets the
// login page rendered in place of the requested content.
func AdminPageGate(manager *jwt.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(cookieName)
		if err != nil || cookie == "" {
			renderLogin(c)
			return
		}

		claims, err := manager.ValidateToken(cookie)
		if err != nil || claims.Role != "admin" {
			renderLogin(c)
			return
		}

		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

func renderLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login.html", gin.H{
		"Title": "Sign in",
		"Next":  c.Request.URL.Path,
	})
	c.Abort()
}
