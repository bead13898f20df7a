package reporting

import (
	"errors"
	"strings"
	"testing"
	"time"

	"hallucination-hunter/backend/internal/metricsaggregator"
)

func testRows() []metricsaggregator.Row {
	return []metricsaggregator.Row{
		{Model: "GPT-4", TestCase: "Contract Q1", Groundedness: 0.90, Relevance: 0.80, Coherence: 0.90, LatencyMs: 450},
		{Model: "GPT-4", TestCase: "Contract Q2", Groundedness: 0.60, Relevance: 0.80, Coherence: 0.90, LatencyMs: 480},
		{Model: "Claude 3", TestCase: "Contract Q1", Groundedness: 0.90, Relevance: 0.80, Coherence: 0.90, LatencyMs: 620},
		{Model: "Claude 3", TestCase: "Contract Q2", Groundedness: 0.60, Relevance: 0.80, Coherence: 0.90, LatencyMs: 580},
	}
}

func TestGenerateReport(t *testing.T) {
	now := time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)
	report, err := GenerateReport(testRows(), 0.7, now)
	if err != nil {
		t.Fatalf("GenerateReport returned error: %v", err)
	}

	wantLines := []string{
		"# Hallucination Evaluation Report",
		"Generated: 2024-06-01 14:30",
		"- Total Test Cases: 4",
		"- Average Groundedness: 75.0%",
		"- Average Relevance: 80.0%",
		"- Average Coherence: 90.0%",
		"- Hallucination Rate: 50.0%",
		"GPT-4, Claude 3",
		"1. Continue monitoring groundedness on contract clauses",
		"3. Implement human-in-the-loop for high-stakes decisions",
	}
	for _, want := range wantLines {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q\nreport:\n%s", want, report)
		}
	}
}

func TestGenerateReportEmptyRows(t *testing.T) {
	_, err := GenerateReport(nil, 0.7, time.Now())
	if !errors.Is(err, metricsaggregator.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestGenerateReportInvalidThreshold(t *testing.T) {
	_, err := GenerateReport(testRows(), 1.5, time.Now())
	if err == nil {
		t.Fatal("expected error for out-of-range threshold, got nil")
	}
}

func TestDistinctModelsFirstOccurrenceOrder(t *testing.T) {
	rows := []metricsaggregator.Row{
		{Model: "B"}, {Model: "A"}, {Model: "B"}, {Model: "C"},
	}
	got := distinctModels(rows)
	want := []string{"B", "A", "C"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
