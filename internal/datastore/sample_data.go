package datastore

import (
	"errors"
	"fmt"
	"log"
)

// SampleDatasetName is the display name of the built-in dataset.
const SampleDatasetName = "Built-in Sample"

// sampleRows is the built-in evaluation set: three models against the same
// three contract-review test cases, scores hand-authored upstream.
var sampleRows = []*EvaluationRow{
	{Model: "GPT-4", TestCase: "Contract Q1", Groundedness: 0.92, Relevance: 0.88, Coherence: 0.94, LatencyMs: 450},
	{Model: "GPT-4", TestCase: "Contract Q2", Groundedness: 0.88, Relevance: 0.91, Coherence: 0.92, LatencyMs: 480},
	{Model: "GPT-4", TestCase: "Contract Q3", Groundedness: 0.95, Relevance: 0.85, Coherence: 0.96, LatencyMs: 520},
	{Model: "Gemini Pro", TestCase: "Contract Q1", Groundedness: 0.89, Relevance: 0.91, Coherence: 0.90, LatencyMs: 380},
	{Model: "Gemini Pro", TestCase: "Contract Q2", Groundedness: 0.85, Relevance: 0.88, Coherence: 0.88, LatencyMs: 350},
	{Model: "Gemini Pro", TestCase: "Contract Q3", Groundedness: 0.91, Relevance: 0.93, Coherence: 0.92, LatencyMs: 400},
	{Model: "Claude 3", TestCase: "Contract Q1", Groundedness: 0.95, Relevance: 0.87, Coherence: 0.93, LatencyMs: 620},
	{Model: "Claude 3", TestCase: "Contract Q2", Groundedness: 0.93, Relevance: 0.89, Coherence: 0.95, LatencyMs: 580},
	{Model: "Claude 3", TestCase: "Contract Q3", Groundedness: 0.96, Relevance: 0.86, Coherence: 0.91, LatencyMs: 650},
}

var sampleTraces = []*Trace{
	{
		ID:                "trace_001",
		Query:             "What is the indemnification cap in the contract?",
		Context:           "The Customer shall indemnify Provider for claims up to $1,000,000...",
		Response:          "The indemnification cap is $1,000,000 as stated in Section 8.2.",
		GroundednessScore: 0.95,
		Reasoning:         "Response directly quotes the cap amount from the source document.",
	},
	{
		ID:                "trace_002",
		Query:             "What are the termination rights?",
		Context:           "Either party may terminate with 30 days written notice...",
		Response:          "The contract can be terminated immediately by either party.",
		GroundednessScore: 0.35,
		Reasoning:         "Response contradicts source. Source says 30 days notice required, response claims immediate termination.",
	},
	{
		ID:                "trace_003",
		Query:             "What data processing is allowed?",
		Context:           "Provider may process data for service delivery and improvement...",
		Response:          "Data can be used for service delivery. The contract also mentions service improvement, though specifics are vague.",
		GroundednessScore: 0.82,
		Reasoning:         "Response is mostly accurate but adds subjective interpretation ('vague') not in source.",
	},
}

// SeedSampleData inserts the built-in sample dataset and traces if they are
// not already present. Safe to call on every startup.
func SeedSampleData() error {
	if DB == nil {
		return errors.New("database connection not initialized")
	}

	if _, err := GetSampleDataset(); err == nil {
		log.Println("Sample dataset already present; skipping seed.")
	} else {
		ds := &Dataset{Name: SampleDatasetName, Source: DatasetSourceSample}
		id, err := CreateDataset(ds)
		if err != nil {
			return fmt.Errorf("failed to seed sample dataset: %w", err)
		}
		if err := InsertEvaluationRows(id, sampleRows); err != nil {
			return fmt.Errorf("failed to seed sample evaluation rows: %w", err)
		}
		log.Printf("Seeded sample dataset (ID %d) with %d rows.", id, len(sampleRows))
	}

	for _, tr := range sampleTraces {
		if _, err := GetTrace(tr.ID); err == nil {
			continue
		}
		if err := CreateTrace(tr); err != nil {
			return fmt.Errorf("failed to seed trace %s: %w", tr.ID, err)
		}
	}
	return nil
}
