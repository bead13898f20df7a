package datastore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateDataset inserts a new dataset and returns its ID.
func CreateDataset(ds *Dataset) (int, error) {
	if DB == nil {
		return 0, errors.New("database connection not initialized")
	}

	query := `
		INSERT INTO datasets (name, source, object_name, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	ds.CreatedAt = time.Now()

	var id int
	err := DB.QueryRow(query, ds.Name, ds.Source, ds.ObjectName, ds.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create dataset: %w", err)
	}
	ds.ID = id
	return id, nil
}

// GetDataset retrieves a dataset by ID.
func GetDataset(id int) (*Dataset, error) {
	if DB == nil {
		return nil, errors.New("database connection not initialized")
	}

	query := `
		SELECT id, name, source, object_name, created_at
		FROM datasets
		WHERE id = $1
	`

	ds := &Dataset{}
	err := DB.QueryRow(query, id).Scan(&ds.ID, &ds.Name, &ds.Source, &ds.ObjectName, &ds.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("dataset with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get dataset %d: %w", id, err)
	}
	return ds, nil
}

// GetSampleDataset returns the built-in sample dataset, if seeded.
func GetSampleDataset() (*Dataset, error) {
	if DB == nil {
		return nil, errors.New("database connection not initialized")
	}

	query := `
		SELECT id, name, source, object_name, created_at
		FROM datasets
		WHERE source = $1
		ORDER BY id ASC
		LIMIT 1
	`

	ds := &Dataset{}
	err := DB.QueryRow(query, DatasetSourceSample).Scan(&ds.ID, &ds.Name, &ds.Source, &ds.ObjectName, &ds.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sample dataset not found; database not seeded")
		}
		return nil, fmt.Errorf("failed to get sample dataset: %w", err)
	}
	return ds, nil
}

// ListDatasets returns all datasets, oldest first.
func ListDatasets() ([]*Dataset, error) {
	if DB == nil {
		return nil, errors.New("database connection not initialized")
	}

	query := `
		SELECT id, name, source, object_name, created_at
		FROM datasets
		ORDER BY id ASC
	`

	rows, err := DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	datasets := []*Dataset{}
	for rows.Next() {
		ds := &Dataset{}
		if err := rows.Scan(&ds.ID, &ds.Name, &ds.Source, &ds.ObjectName, &ds.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dataset row: %w", err)
		}
		datasets = append(datasets, ds)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during dataset rows iteration: %w", err)
	}
	return datasets, nil
}

// DeleteDataset removes a dataset; evaluation rows cascade in the schema.
func DeleteDataset(id int) error {
	if DB == nil {
		return errors.New("database connection not initialized")
	}

	result, err := DB.Exec(`DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dataset %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected for dataset %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("dataset with ID %d not found", id)
	}
	return nil
}

// InsertEvaluationRows inserts a batch of evaluation rows for a dataset in
// a single transaction, preserving input order.
func InsertEvaluationRows(datasetID int, evalRows []*EvaluationRow) error {
	if DB == nil {
		return errors.New("database connection not initialized")
	}

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for dataset %d rows: %w", datasetID, err)
	}

	query := `
		INSERT INTO evaluation_rows (
			dataset_id, model, test_case,
			groundedness, relevance, coherence, latency_ms, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	now := time.Now()
	for _, row := range evalRows {
		row.DatasetID = datasetID
		row.CreatedAt = now
		if _, err := tx.Exec(query,
			row.DatasetID,
			row.Model,
			row.TestCase,
			row.Groundedness,
			row.Relevance,
			row.Coherence,
			row.LatencyMs,
			row.CreatedAt,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert evaluation row for dataset %d: %w", datasetID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit evaluation rows for dataset %d: %w", datasetID, err)
	}
	return nil
}

// GetEvaluationRowsForDataset retrieves all rows of a dataset in insertion
// order. Readers recompute aggregates from the full row set on every call.
func GetEvaluationRowsForDataset(datasetID int) ([]*EvaluationRow, error) {
	if DB == nil {
		return nil, errors.New("database connection not initialized")
	}

	query := `
		SELECT id, dataset_id, model, test_case,
		       groundedness, relevance, coherence, latency_ms, created_at
		FROM evaluation_rows
		WHERE dataset_id = $1
		ORDER BY id ASC
	`

	rows, err := DB.Query(query, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation rows for dataset %d: %w", datasetID, err)
	}
	defer rows.Close()

	results := []*EvaluationRow{}
	for rows.Next() {
		row := &EvaluationRow{}
		if err := rows.Scan(
			&row.ID,
			&row.DatasetID,
			&row.Model,
			&row.TestCase,
			&row.Groundedness,
			&row.Relevance,
			&row.Coherence,
			&row.LatencyMs,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation row for dataset %d: %w", datasetID, err)
		}
		results = append(results, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration for dataset %d: %w", datasetID, err)
	}
	return results, nil
}
