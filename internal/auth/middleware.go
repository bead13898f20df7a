package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware checks for a valid admin session cookie.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(sessionCookieName)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Missing session token"})
			c.Abort()
			return
		}

		if sessionToken != "" && cookie == sessionToken {
			c.Next()
			return
		}

		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid session token"})
		c.Abort()
	}
}
