// Package config handles configuration loading from environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// AppConfig holds the service configuration loaded at startup. It is built
// once and passed explicitly; nothing reads ambient process state after
// Load returns.
type AppConfig struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// MinioConfigured reports whether the CSV archive env vars are present.
	// The archive is optional: without it uploads are still parsed and
	// stored, just not archived.
	MinioConfigured bool
}

// Load reads configuration from environment variables and a .env file if
// one exists.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		// It's okay if the file doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &AppConfig{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", ""),
		DBName:          getEnv("DB_NAME", "hallucination_hunter_db"),
		DBSSLMode:       getEnv("DB_SSLMODE", "disable"),
		MinioConfigured: os.Getenv("MINIO_ENDPOINT") != "",
	}
	return cfg, nil
}

// DSN builds the Postgres data source name.
func (c *AppConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
