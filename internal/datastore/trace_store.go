package datastore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateTrace inserts a new trace. Trace IDs are caller-supplied and unique.
func CreateTrace(tr *Trace) error {
	if DB == nil {
		return errors.New("database connection not initialized")
	}

	query := `
		INSERT INTO traces (
			id, query, context, response,
			groundedness_score, reasoning, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	tr.CreatedAt = time.Now()

	_, err := DB.Exec(query,
		tr.ID,
		tr.Query,
		tr.Context,
		tr.Response,
		tr.GroundednessScore,
		tr.Reasoning,
		tr.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create trace %s: %w", tr.ID, err)
	}
	return nil
}

// GetTrace retrieves a single trace by ID.
func GetTrace(id string) (*Trace, error) {
	if DB == nil {
		return nil, errors.New("database connection not initialized")
	}

	query := `
		SELECT id, query, context, response,
		       groundedness_score, reasoning, created_at
		FROM traces
		WHERE id = $1
	`

	tr := &Trace{}
	err := DB.QueryRow(query, id).Scan(
		&tr.ID,
		&tr.Query,
		&tr.Context,
		&tr.Response,
		&tr.GroundednessScore,
		&tr.Reasoning,
		&tr.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("trace with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get trace %s: %w", id, err)
	}
	return tr, nil
}

// ListTraces returns all traces ordered by ID.
func ListTraces() ([]*Trace, error) {
	if DB == nil {
		return nil, errors.New("database connection not initialized")
	}

	query := `
		SELECT id, query, context, response,
		       groundedness_score, reasoning, created_at
		FROM traces
		ORDER BY id ASC
	`

	rows, err := DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query traces: %w", err)
	}
	defer rows.Close()

	traces := []*Trace{}
	for rows.Next() {
		tr := &Trace{}
		if err := rows.Scan(
			&tr.ID,
			&tr.Query,
			&tr.Context,
			&tr.Response,
			&tr.GroundednessScore,
			&tr.Reasoning,
			&tr.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trace row: %w", err)
		}
		traces = append(traces, tr)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during trace rows iteration: %w", err)
	}
	return traces, nil
}
