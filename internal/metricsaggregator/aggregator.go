package metricsaggregator

import (
	"errors"
	"fmt"
)

// DefaultThreshold is the groundedness threshold below which a row counts
// as a hallucination when the caller does not supply one.
const DefaultThreshold = 0.7

// DefaultBaseline is the reference value used for metric deltas on the
// overview cards.
const DefaultBaseline = 0.85

// ErrEmptyInput is returned when an aggregation is undefined for an empty
// row set (e.g. the mean of zero values). Callers must guard or supply a
// default before rendering.
var ErrEmptyInput = errors.New("metricsaggregator: empty input, aggregation undefined")

// Row is a single evaluation result for one (model, test case) pair.
// Score fields are expected to be in [0,1]; LatencyMs is non-negative.
// The aggregator does not depend on how rows are stored or loaded.
type Row struct {
	Model        string  `json:"model"`
	TestCase     string  `json:"test_case"`
	Groundedness float64 `json:"groundedness"`
	Relevance    float64 `json:"relevance"`
	Coherence    float64 `json:"coherence"`
	LatencyMs    float64 `json:"latency_ms"`
}

// Averages holds the arithmetic means of the three quality scores over a
// row set.
type Averages struct {
	AvgGroundedness float64 `json:"avg_groundedness"`
	AvgRelevance    float64 `json:"avg_relevance"`
	AvgCoherence    float64 `json:"avg_coherence"`
}

// ModelSummary is the per-model aggregate used for model comparison.
type ModelSummary struct {
	Model           string  `json:"model"`
	AvgGroundedness float64 `json:"avg_groundedness"`
	AvgRelevance    float64 `json:"avg_relevance"`
	AvgCoherence    float64 `json:"avg_coherence"`
	AvgLatencyMs    float64 `json:"avg_latency_ms"`
}

// ComputeAverages returns the arithmetic mean of each score column over all
// rows. Returns ErrEmptyInput if rows is empty, since the mean is undefined.
func ComputeAverages(rows []Row) (Averages, error) {
	if len(rows) == 0 {
		return Averages{}, ErrEmptyInput
	}

	var sumG, sumR, sumC float64
	for _, row := range rows {
		sumG += row.Groundedness
		sumR += row.Relevance
		sumC += row.Coherence
	}

	n := float64(len(rows))
	return Averages{
		AvgGroundedness: sumG / n,
		AvgRelevance:    sumR / n,
		AvgCoherence:    sumC / n,
	}, nil
}

// ValidateThreshold checks that a caller-supplied hallucination threshold is
// within [0,1]. Out-of-range values are a configuration error and must be
// rejected at the boundary before any aggregation runs.
func ValidateThreshold(threshold float64) error {
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("threshold %.4f out of range [0,1]", threshold)
	}
	return nil
}

// ComputeHallucinationRate returns the fraction of rows whose groundedness
// is strictly below threshold. A row with groundedness exactly equal to the
// threshold does not count as a hallucination.
func ComputeHallucinationRate(rows []Row, threshold float64) (float64, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, ErrEmptyInput
	}

	below := 0
	for _, row := range rows {
		if row.Groundedness < threshold {
			below++
		}
	}
	return float64(below) / float64(len(rows)), nil
}

// GroupByModel partitions rows by model name and computes per-group means
// for all four metric columns. The result preserves the first-occurrence
// order of each model in the input sequence. An empty input yields an empty
// (non-nil) slice.
func GroupByModel(rows []Row) []ModelSummary {
	type accum struct {
		count                  int
		sumG, sumR, sumC, sumL float64
	}

	order := []string{}
	groups := map[string]*accum{}

	for _, row := range rows {
		a, ok := groups[row.Model]
		if !ok {
			a = &accum{}
			groups[row.Model] = a
			order = append(order, row.Model)
		}
		a.count++
		a.sumG += row.Groundedness
		a.sumR += row.Relevance
		a.sumC += row.Coherence
		a.sumL += row.LatencyMs
	}

	summaries := make([]ModelSummary, 0, len(order))
	for _, model := range order {
		a := groups[model]
		n := float64(a.count)
		summaries = append(summaries, ModelSummary{
			Model:           model,
			AvgGroundedness: a.sumG / n,
			AvgRelevance:    a.sumR / n,
			AvgCoherence:    a.sumC / n,
			AvgLatencyMs:    a.sumL / n,
		})
	}
	return summaries
}

// DeltaAgainstBaseline returns the signed difference between a metric value
// and a baseline. The result is for display only and is not clamped.
func DeltaAgainstBaseline(value, baseline float64) float64 {
	return value - baseline
}
