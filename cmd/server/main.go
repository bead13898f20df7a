package main

import (
	"log"

	"hallucination-hunter/backend/internal/apigateway"
	"hallucination-hunter/backend/internal/auth"
	"hallucination-hunter/backend/internal/config"
	"hallucination-hunter/backend/internal/datastore"
	"hallucination-hunter/backend/internal/objectstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	auth.LoadAdminCredentials()

	if err := datastore.InitDB(cfg.DSN()); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer datastore.DB.Close()

	if err := datastore.EnsureSchema(); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}
	if err := datastore.SeedSampleData(); err != nil {
		log.Fatalf("Failed to seed sample data: %v", err)
	}

	// The CSV archive is optional; without it uploads are parsed and stored
	// but the original files are not retained.
	if cfg.MinioConfigured {
		if err := objectstore.InitArchiveClient(); err != nil {
			log.Fatalf("Failed to initialize CSV archive: %v", err)
		}
	} else {
		log.Println("MINIO_ENDPOINT not set; uploaded CSV originals will not be archived.")
	}

	router := apigateway.SetupRouter()

	log.Printf("Starting server on :%s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
