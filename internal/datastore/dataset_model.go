package datastore

import (
	"database/sql"
	"time"
)

// Dataset source values.
const (
	DatasetSourceSample = "sample"
	DatasetSourceUpload = "upload"
)

// Dataset maps to the datasets table. A dataset is one loaded table of
// evaluation rows: either the built-in sample set or one uploaded CSV.
type Dataset struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Source     string         `json:"source"` // "sample" or "upload"
	ObjectName sql.NullString `json:"object_name,omitempty"` // MinIO key of the archived upload
	CreatedAt  time.Time      `json:"created_at"`
}

// EvaluationRow maps to the evaluation_rows table. Scores are stored as
// supplied (precomputed upstream); this service never derives them.
type EvaluationRow struct {
	ID           int       `json:"id"`
	DatasetID    int       `json:"dataset_id"`
	Model        string    `json:"model"`
	TestCase     string    `json:"test_case"`
	Groundedness float64   `json:"groundedness"`
	Relevance    float64   `json:"relevance"`
	Coherence    float64   `json:"coherence"`
	LatencyMs    float64   `json:"latency_ms"`
	CreatedAt    time.Time `json:"created_at"`
}
