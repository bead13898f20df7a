package datamanagement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"hallucination-hunter/backend/internal/datastore"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// RequiredColumns is the exact column set an evaluation CSV must carry.
// Column order is free; names are matched exactly.
var RequiredColumns = []string{"model", "test_case", "groundedness", "relevance", "coherence", "latency_ms"}

// scoreColumns must stay within [0,1].
var scoreColumns = map[string]bool{"groundedness": true, "relevance": true, "coherence": true}

// suggestColumn returns the closest required column name for an unknown
// header, or "" when nothing is plausibly close (edit distance > 3).
func suggestColumn(header string) string {
	best := ""
	bestDist := 4
	for _, col := range RequiredColumns {
		d := levenshtein.DistanceForStrings([]rune(header), []rune(col), levenshtein.DefaultOptions)
		if d < bestDist {
			bestDist = d
			best = col
		}
	}
	return best
}

// ParseEvalCSV reads an uploaded evaluation CSV and returns its rows in
// file order. The header must contain exactly the required columns (any
// order). Malformed input is rejected, never coerced: unknown or missing
// columns, non-numeric scores, scores outside [0,1], and negative latencies
// all fail with the offending column and line.
func ParseEvalCSV(r io.Reader) ([]*datastore.EvaluationRow, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndex := map[string]int{}
	for i, name := range header {
		if _, dup := colIndex[name]; dup {
			return nil, fmt.Errorf("duplicate column %q in header", name)
		}
		colIndex[name] = i
	}

	known := map[string]bool{}
	for _, col := range RequiredColumns {
		known[col] = true
		if _, ok := colIndex[col]; !ok {
			msg := fmt.Sprintf("missing required column %q", col)
			for _, h := range header {
				if !known[h] && suggestColumn(h) == col {
					msg = fmt.Sprintf("%s (did you mean to name column %q %q?)", msg, h, col)
					break
				}
			}
			return nil, fmt.Errorf("%s", msg)
		}
	}
	for _, name := range header {
		if !known[name] {
			if s := suggestColumn(name); s != "" {
				return nil, fmt.Errorf("unknown column %q (closest known column: %q)", name, s)
			}
			return nil, fmt.Errorf("unknown column %q", name)
		}
	}

	rows := []*datastore.EvaluationRow{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		parseScore := func(col string) (float64, error) {
			raw := record[colIndex[col]]
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return 0, fmt.Errorf("line %d: column %q: %q is not numeric", line, col, raw)
			}
			if scoreColumns[col] && (v < 0 || v > 1) {
				return 0, fmt.Errorf("line %d: column %q: %v outside [0,1]", line, col, v)
			}
			return v, nil
		}

		row := &datastore.EvaluationRow{
			Model:    record[colIndex["model"]],
			TestCase: record[colIndex["test_case"]],
		}
		if row.Model == "" {
			return nil, fmt.Errorf("line %d: column \"model\" is empty", line)
		}
		if row.Groundedness, err = parseScore("groundedness"); err != nil {
			return nil, err
		}
		if row.Relevance, err = parseScore("relevance"); err != nil {
			return nil, err
		}
		if row.Coherence, err = parseScore("coherence"); err != nil {
			return nil, err
		}
		if row.LatencyMs, err = parseScore("latency_ms"); err != nil {
			return nil, err
		}
		if row.LatencyMs < 0 {
			return nil, fmt.Errorf("line %d: column \"latency_ms\": %v is negative", line, row.LatencyMs)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data rows after header")
	}
	return rows, nil
}
