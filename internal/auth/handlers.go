package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LoginPayload defines the expected JSON structure for login requests.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler checks credentials against the env-configured admin user and
// on success sets the session cookie.
func LoginHandler(c *gin.Context) {
	var payload LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if adminUsername == "" || adminPassword == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Admin credentials not configured on server"})
		return
	}

	if payload.Username == adminUsername && payload.Password == adminPassword {
		// HttpOnly cookie, 1 hour. Secure=false for local dev without HTTPS.
		c.SetCookie(sessionCookieName, sessionToken, 3600, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
		return
	}

	c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
}

// LogoutHandler clears the session cookie.
func LogoutHandler(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}
