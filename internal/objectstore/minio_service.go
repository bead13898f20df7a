package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ArchiveClient stores the original bytes of uploaded evaluation CSVs so an
// upload can always be re-examined after its rows are parsed into Postgres.
type ArchiveClient struct {
	Client     *minio.Client
	BucketName string
}

var globalArchiveClient *ArchiveClient

// InitArchiveClient initializes the global MinIO-backed archive from
// environment variables. Call once at application startup.
func InitArchiveClient() error {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKeyID := os.Getenv("MINIO_ACCESS_KEY_ID")
	secretAccessKey := os.Getenv("MINIO_SECRET_ACCESS_KEY")
	bucketName := os.Getenv("MINIO_BUCKET_NAME")
	useSSLStr := os.Getenv("MINIO_USE_SSL")

	if endpoint == "" || accessKeyID == "" || secretAccessKey == "" || bucketName == "" {
		return fmt.Errorf("MINIO_ENDPOINT, MINIO_ACCESS_KEY_ID, MINIO_SECRET_ACCESS_KEY, and MINIO_BUCKET_NAME must be set")
	}

	useSSL, err := strconv.ParseBool(useSSLStr)
	if err != nil {
		log.Printf("Warning: MINIO_USE_SSL is not a valid boolean ('%s'). Defaulting to false.", useSSLStr)
		useSSL = false
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("failed to check if MinIO bucket '%s' exists: %w", bucketName, err)
	}
	if !exists {
		log.Printf("MinIO bucket '%s' does not exist. Creating it.", bucketName)
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create MinIO bucket '%s': %w", bucketName, err)
		}
	}

	globalArchiveClient = &ArchiveClient{Client: client, BucketName: bucketName}
	log.Println("CSV archive (MinIO) initialized successfully.")
	return nil
}

// GetArchiveClient returns the initialized global archive client.
func GetArchiveClient() (*ArchiveClient, error) {
	if globalArchiveClient == nil {
		return nil, fmt.Errorf("archive client not initialized. Call InitArchiveClient first")
	}
	return globalArchiveClient, nil
}

// ArchiveCSV stores the raw bytes of an uploaded CSV under a unique object
// name (uuid + original extension) and returns that name.
func (ac *ArchiveClient) ArchiveCSV(ctx context.Context, originalFilename string, data []byte) (string, error) {
	if ac.Client == nil || ac.BucketName == "" {
		return "", fmt.Errorf("archive client not configured")
	}

	extension := filepath.Ext(originalFilename)
	if extension == "" {
		extension = ".csv"
	}
	objectName := fmt.Sprintf("%s%s", uuid.New().String(), extension)

	_, err := ac.Client.PutObject(ctx, ac.BucketName, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		return "", fmt.Errorf("failed to archive CSV (bucket: %s, object: %s): %w", ac.BucketName, objectName, err)
	}

	log.Printf("Archived uploaded CSV '%s' as object '%s' (%d bytes).", originalFilename, objectName, len(data))
	return objectName, nil
}

// RemoveObject deletes an archived CSV, used when the owning dataset is
// deleted or its ingest fails after archiving.
func (ac *ArchiveClient) RemoveObject(ctx context.Context, objectName string) error {
	if ac.Client == nil || ac.BucketName == "" {
		return fmt.Errorf("archive client not configured")
	}

	if err := ac.Client.RemoveObject(ctx, ac.BucketName, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object '%s' from bucket '%s': %w", objectName, ac.BucketName, err)
	}
	log.Printf("Deleted archived object '%s' from bucket '%s'.", objectName, ac.BucketName)
	return nil
}

// GetObjectBytes retrieves an archived CSV as a byte slice.
func (ac *ArchiveClient) GetObjectBytes(ctx context.Context, objectName string) ([]byte, error) {
	if ac.Client == nil || ac.BucketName == "" {
		return nil, fmt.Errorf("archive client not configured")
	}

	object, err := ac.Client.GetObject(ctx, ac.BucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object '%s' from bucket '%s': %w", objectName, ac.BucketName, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read object '%s' data: %w", objectName, err)
	}
	return data, nil
}
