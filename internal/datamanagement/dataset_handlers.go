package datamanagement

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"hallucination-hunter/backend/internal/datastore"
	"hallucination-hunter/backend/internal/objectstore"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 10 << 20 // 10 MB

// UploadDatasetHandler ingests an evaluation CSV. It expects a
// multipart/form-data request with a "file" field and an optional "name"
// field. The CSV is parsed and validated first; only valid files are
// archived in MinIO and inserted into the database.
func UploadDatasetHandler(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to parse multipart form: %v. Max size: %d MB", err, maxUploadSize>>20)})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to get file: %v", err)})
		}
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("File size exceeds limit of %d MB", maxUploadSize>>20)})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to open uploaded file: %v", err)})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to read uploaded file: %v", err)})
		return
	}

	// Validate before touching storage: a malformed upload must not leave
	// an archived object or a half-inserted dataset behind.
	rows, err := ParseEvalCSV(bytes.NewReader(data))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid evaluation CSV: %v", err)})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = fileHeader.Filename
	}

	ds := &datastore.Dataset{
		Name:   name,
		Source: datastore.DatasetSourceUpload,
	}

	// Archive the original bytes when the archive is available. The archive
	// is auxiliary: ingest proceeds without it.
	var archived string
	archive, archiveErr := objectstore.GetArchiveClient()
	if archiveErr == nil {
		archived, err = archive.ArchiveCSV(c.Request.Context(), fileHeader.Filename, data)
		if err != nil {
			log.Printf("Failed to archive uploaded CSV '%s': %v. Continuing without archive.", fileHeader.Filename, err)
		} else {
			ds.ObjectName = sql.NullString{String: archived, Valid: true}
		}
	}

	id, err := datastore.CreateDataset(ds)
	if err != nil {
		cleanupArchivedObject(archived)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to create dataset: %v", err)})
		return
	}

	if err := datastore.InsertEvaluationRows(id, rows); err != nil {
		if delErr := datastore.DeleteDataset(id); delErr != nil {
			log.Printf("CRITICAL: Failed to delete dataset %d after row insert error: %v. Insert error was: %v", id, delErr, err)
		}
		cleanupArchivedObject(archived)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to store evaluation rows: %v", err)})
		return
	}

	created, err := datastore.GetDataset(id)
	if err != nil {
		log.Printf("Failed to refetch dataset %d after creation: %v", id, err)
		c.JSON(http.StatusCreated, gin.H{"dataset": ds, "row_count": len(rows)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"dataset": created, "row_count": len(rows)})
}

func cleanupArchivedObject(objectName string) {
	if objectName == "" {
		return
	}
	archive, err := objectstore.GetArchiveClient()
	if err != nil {
		return
	}
	go func() {
		if err := archive.RemoveObject(context.Background(), objectName); err != nil {
			log.Printf("Failed to delete orphaned archive object '%s': %v", objectName, err)
		}
	}()
}

// ListDatasetsHandler lists all datasets.
func ListDatasetsHandler(c *gin.Context) {
	datasets, err := datastore.ListDatasets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to list datasets: %v", err)})
		return
	}
	c.JSON(http.StatusOK, datasets)
}

// GetDatasetHandler returns a dataset with its evaluation rows.
func GetDatasetHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dataset ID format"})
		return
	}

	ds, err := datastore.GetDataset(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to retrieve dataset: %v", err)})
		}
		return
	}

	rows, err := datastore.GetEvaluationRowsForDataset(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to retrieve evaluation rows: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dataset": ds, "rows": rows})
}

// DownloadDatasetOriginalHandler streams back the archived original CSV of
// an uploaded dataset, bytes exactly as received at ingest.
func DownloadDatasetOriginalHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dataset ID format"})
		return
	}

	ds, err := datastore.GetDataset(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to retrieve dataset: %v", err)})
		}
		return
	}
	if !ds.ObjectName.Valid || ds.ObjectName.String == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Dataset %d has no archived original", id)})
		return
	}

	archive, err := objectstore.GetArchiveClient()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "CSV archive not available"})
		return
	}

	data, err := archive.GetObjectBytes(c.Request.Context(), ds.ObjectName.String)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to retrieve archived CSV: %v", err)})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, ds.ObjectName.String))
	c.Data(http.StatusOK, "text/csv", data)
}

// DeleteDatasetHandler deletes a dataset and, best effort, its archived
// CSV. The built-in sample dataset cannot be deleted.
func DeleteDatasetHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dataset ID format"})
		return
	}

	ds, err := datastore.GetDataset(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to retrieve dataset before deletion: %v", err)})
		}
		return
	}
	if ds.Source == datastore.DatasetSourceSample {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The built-in sample dataset cannot be deleted"})
		return
	}

	if err := datastore.DeleteDataset(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to delete dataset: %v", err)})
		return
	}

	if ds.ObjectName.Valid && ds.ObjectName.String != "" {
		archive, archiveErr := objectstore.GetArchiveClient()
		if archiveErr != nil {
			log.Printf("Archive unavailable while deleting dataset %d; object '%s' may be orphaned: %v", id, ds.ObjectName.String, archiveErr)
		} else if err := archive.RemoveObject(c.Request.Context(), ds.ObjectName.String); err != nil {
			log.Printf("Failed to delete archived object '%s' for dataset %d: %v. DB record was deleted.", ds.ObjectName.String, id, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Dataset deleted successfully"})
}
