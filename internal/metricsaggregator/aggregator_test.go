package metricsaggregator

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func sampleRows() []Row {
	return []Row{
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
}

func TestComputeAveragesEmptyInput(t *testing.T) {
	_, err := ComputeAverages(nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestComputeAveragesWithinColumnBounds(t *testing.T) {
	rows := sampleRows()
	avgs, err := ComputeAverages(rows)
	if err != nil {
		t.Fatalf("ComputeAverages returned error: %v", err)
	}

	minMax := func(get func(Row) float64) (float64, float64) {
		lo, hi := get(rows[0]), get(rows[0])
		for _, r := range rows[1:] {
			v := get(r)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		return lo, hi
	}

	checks := []struct {
		name string
		avg  float64
		get  func(Row) float64
	}{
		{"groundedness", avgs.AvgGroundedness, func(r Row) float64 { return r.Groundedness }},
		{"relevance", avgs.AvgRelevance, func(r Row) float64 { return r.Relevance }},
		{"coherence", avgs.AvgCoherence, func(r Row) float64 { return r.Coherence }},
	}
	for _, c := range checks {
		lo, hi := minMax(c.get)
		if c.avg < lo-tolerance || c.avg > hi+tolerance {
			t.Errorf("avg %s = %f outside input column range [%f, %f]", c.name, c.avg, lo, hi)
		}
	}
}

func TestComputeAveragesIdempotent(t *testing.T) {
	rows := sampleRows()
	first, err := ComputeAverages(rows)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := ComputeAverages(rows)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first != second {
		t.Errorf("repeated calls differ: %+v vs %+v", first, second)
	}
}

func TestComputeHallucinationRate(t *testing.T) {
	rows := sampleRows()

	tests := []struct {
		name      string
		threshold float64
		want      float64
	}{
		{"zero threshold counts nothing", 0.0, 0.0},
		{"one threshold counts everything below 1", 1.0, 1.0},
		{"default threshold on clean sample", DefaultThreshold, 0.0},
		{"threshold above some scores", 0.90, 3.0 / 9.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeHallucinationRate(rows, tc.threshold)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almostEqual(got, tc.want) {
				t.Errorf("rate at threshold %v = %f, want %f", tc.threshold, got, tc.want)
			}
		})
	}
}

func TestComputeHallucinationRateStrictComparison(t *testing.T) {
	// A row exactly at the threshold must not count as a hallucination.
	rows := []Row{
		{Model: "m", TestCase: "at", Groundedness: 0.7},
		{Model: "m", TestCase: "below", Groundedness: 0.69},
	}
	got, err := ComputeHallucinationRate(rows, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 0.5) {
		t.Errorf("rate = %f, want 0.5 (boundary row must not count)", got)
	}
}

func TestComputeHallucinationRateErrors(t *testing.T) {
	if _, err := ComputeHallucinationRate(nil, 0.7); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty rows: expected ErrEmptyInput, got %v", err)
	}
	if _, err := ComputeHallucinationRate(sampleRows(), -0.1); err == nil {
		t.Error("negative threshold: expected error, got nil")
	}
	if _, err := ComputeHallucinationRate(sampleRows(), 1.1); err == nil {
		t.Error("threshold above 1: expected error, got nil")
	}
}

func TestValidateThreshold(t *testing.T) {
	for _, v := range []float64{0, 0.5, 0.7, 1} {
		if err := ValidateThreshold(v); err != nil {
			t.Errorf("ValidateThreshold(%v) = %v, want nil", v, err)
		}
	}
	for _, v := range []float64{-0.01, 1.01, 2} {
		if err := ValidateThreshold(v); err == nil {
			t.Errorf("ValidateThreshold(%v) = nil, want error", v)
		}
	}
}

func TestGroupByModel(t *testing.T) {
	summaries := GroupByModel(sampleRows())

	if len(summaries) != 3 {
		t.Fatalf("expected 3 model summaries, got %d", len(summaries))
	}

	// First-occurrence order of the input must be preserved.
	wantOrder := []string{"GPT-4", "Gemini Pro", "Claude 3"}
	for i, want := range wantOrder {
		if summaries[i].Model != want {
			t.Errorf("summary[%d].Model = %q, want %q", i, summaries[i].Model, want)
		}
	}

	gpt4 := summaries[0]
	if !almostEqual(gpt4.AvgGroundedness, (0.92+0.88+0.95)/3) {
		t.Errorf("GPT-4 avg groundedness = %f, want %f", gpt4.AvgGroundedness, (0.92+0.88+0.95)/3)
	}
	if !almostEqual(gpt4.AvgRelevance, (0.88+0.91+0.85)/3) {
		t.Errorf("GPT-4 avg relevance = %f", gpt4.AvgRelevance)
	}
	if !almostEqual(gpt4.AvgCoherence, (0.94+0.92+0.96)/3) {
		t.Errorf("GPT-4 avg coherence = %f", gpt4.AvgCoherence)
	}
	if !almostEqual(gpt4.AvgLatencyMs, (450.0+480.0+520.0)/3) {
		t.Errorf("GPT-4 avg latency = %f", gpt4.AvgLatencyMs)
	}
}

func TestGroupByModelInterleavedOrder(t *testing.T) {
	rows := []Row{
		{Model: "B", Groundedness: 0.9},
		{Model: "A", Groundedness: 0.8},
		{Model: "B", Groundedness: 0.7},
	}
	summaries := GroupByModel(rows)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].Model != "B" || summaries[1].Model != "A" {
		t.Errorf("order = [%s, %s], want [B, A]", summaries[0].Model, summaries[1].Model)
	}
	if !almostEqual(summaries[0].AvgGroundedness, 0.8) {
		t.Errorf("B avg groundedness = %f, want 0.8", summaries[0].AvgGroundedness)
	}
}

func TestGroupByModelEmpty(t *testing.T) {
	summaries := GroupByModel(nil)
	if summaries == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(summaries) != 0 {
		t.Fatalf("expected 0 summaries, got %d", len(summaries))
	}
}

func TestDeltaAgainstBaseline(t *testing.T) {
	if got := DeltaAgainstBaseline(0.90, DefaultBaseline); !almostEqual(got, 0.05) {
		t.Errorf("delta = %f, want 0.05", got)
	}
	if got := DeltaAgainstBaseline(0.80, DefaultBaseline); !almostEqual(got, -0.05) {
		t.Errorf("delta = %f, want -0.05", got)
	}
	// No clamping even for values outside [0,1].
	if got := DeltaAgainstBaseline(1.5, 0.0); !almostEqual(got, 1.5) {
		t.Errorf("delta = %f, want 1.5", got)
	}
}
