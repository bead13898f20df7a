package datamanagement

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hallucination-hunter/backend/internal/datastore"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func mockDatastore(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	prev := datastore.DB
	datastore.DB = db
	t.Cleanup(func() {
		datastore.DB = prev
		db.Close()
	})
	return mock
}

func datasetRouter() *gin.Engine {
	router := gin.New()
	router.GET("/datasets/:id/original.csv", DownloadDatasetOriginalHandler)
	return router
}

func expectDataset(mock sqlmock.Sqlmock, objectName sql.NullString) {
	mock.ExpectQuery(`SELECT id, name, source, object_name, created_at`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "source", "object_name", "created_at"}).
			AddRow(5, "q3.csv", datastore.DatasetSourceUpload, objectName, time.Now()))
}

func TestDownloadDatasetOriginalInvalidID(t *testing.T) {
	w := httptest.NewRecorder()
	datasetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/datasets/abc/original.csv", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestDownloadDatasetOriginalMissingDataset(t *testing.T) {
	mock := mockDatastore(t)
	mock.ExpectQuery(`SELECT id, name, source, object_name, created_at`).
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	datasetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/datasets/42/original.csv", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestDownloadDatasetOriginalNoArchivedObject(t *testing.T) {
	mock := mockDatastore(t)
	expectDataset(mock, sql.NullString{})

	w := httptest.NewRecorder()
	datasetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/datasets/5/original.csv", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body = %s", w.Code, w.Body.String())
	}
}

func TestDownloadDatasetOriginalArchiveUnavailable(t *testing.T) {
	// Dataset has an archived object but the archive client was never
	// initialized in this process.
	mock := mockDatastore(t)
	expectDataset(mock, sql.NullString{String: "abc123.csv", Valid: true})

	w := httptest.NewRecorder()
	datasetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/datasets/5/original.csv", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503, body = %s", w.Code, w.Body.String())
	}
}
