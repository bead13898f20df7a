package auth

import (
	"log"
	"os"

	"github.com/google/uuid"
)

var adminUsername string
var adminPassword string // Plain text, env-configured

// sessionToken is generated per process; restarting the server invalidates
// all sessions.
var sessionToken string

const sessionCookieName = "hh_session_token"

// LoadAdminCredentials loads the admin username and password from
// environment variables and generates the process session token. Call once
// at application startup.
func LoadAdminCredentials() {
	adminUsername = os.Getenv("ADMIN_USERNAME")
	adminPassword = os.Getenv("ADMIN_PASSWORD")
	sessionToken = uuid.New().String()

	if adminUsername == "" {
		log.Println("WARNING: ADMIN_USERNAME environment variable not set.")
	}
	if adminPassword == "" {
		log.Println("WARNING: ADMIN_PASSWORD environment variable not set.")
	}
}
