package datastore

import "time"

// Trace maps to the traces table: one recorded (query, context, response)
// evaluation instance with its precomputed groundedness score and rationale.
// The verdict is intentionally NOT stored; it is derived on read via
// metricsaggregator.ClassifyVerdict so the thresholds live in one place.
type Trace struct {
	ID                string    `json:"id"`
	Query             string    `json:"query"`
	Context           string    `json:"context"`
	Response          string    `json:"response"`
	GroundednessScore float64   `json:"groundedness_score"`
	Reasoning         string    `json:"reasoning"`
	CreatedAt         time.Time `json:"created_at"`
}
