package analysis

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hallucination-hunter/backend/internal/datastore"
	"hallucination-hunter/backend/internal/metricsaggregator"

	"github.com/gin-gonic/gin"
)

// trendStart matches the first day of the demo trend window.
var trendStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// MetricCard is one overview card: a metric value with its delta against
// the baseline and a display hint for delta coloring. The direction hint is
// a presentation concern and lives here, not in the aggregator.
type MetricCard struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Delta     float64 `json:"delta"`
	Direction string  `json:"direction"` // "higher_is_better" or "lower_is_better"
}

// SummaryResponse is the overview payload: the four metric cards plus the
// dataset and threshold they were computed from.
type SummaryResponse struct {
	DatasetID         int        `json:"dataset_id"`
	Threshold         float64    `json:"threshold"`
	TotalTestCases    int        `json:"total_test_cases"`
	AvgGroundedness   MetricCard `json:"avg_groundedness"`
	AvgRelevance      MetricCard `json:"avg_relevance"`
	AvgCoherence      MetricCard `json:"avg_coherence"`
	HallucinationRate MetricCard `json:"hallucination_rate"`
}

// ResolveRows loads the evaluation rows for the dataset named by the
// dataset_id query param, defaulting to the built-in sample dataset, and
// converts them for aggregation. Returns the resolved dataset ID.
func ResolveRows(c *gin.Context) (int, []metricsaggregator.Row, bool) {
	var (
		ds  *datastore.Dataset
		err error
	)
	if idStr := c.Query("dataset_id"); idStr != "" {
		id, convErr := strconv.Atoi(idStr)
		if convErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dataset_id format"})
			return 0, nil, false
		}
		ds, err = datastore.GetDataset(id)
	} else {
		ds, err = datastore.GetSampleDataset()
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return 0, nil, false
	}

	stored, err := datastore.GetEvaluationRowsForDataset(ds.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to load evaluation rows: %v", err)})
		return 0, nil, false
	}

	rows := make([]metricsaggregator.Row, 0, len(stored))
	for _, r := range stored {
		rows = append(rows, metricsaggregator.Row{
			Model:        r.Model,
			TestCase:     r.TestCase,
			Groundedness: r.Groundedness,
			Relevance:    r.Relevance,
			Coherence:    r.Coherence,
			LatencyMs:    r.LatencyMs,
		})
	}
	return ds.ID, rows, true
}

// ParseThreshold reads and validates the threshold query param. Rejecting
// out-of-range values here keeps the configuration error at the boundary,
// before any aggregation runs.
func ParseThreshold(c *gin.Context) (float64, bool) {
	raw := c.Query("threshold")
	if raw == "" {
		return metricsaggregator.DefaultThreshold, true
	}
	threshold, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid threshold %q: not a number", raw)})
		return 0, false
	}
	if err := metricsaggregator.ValidateThreshold(threshold); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid threshold: %v", err)})
		return 0, false
	}
	return threshold, true
}

// GetSummaryHandler computes the overview metrics for a dataset. Everything
// is recomputed from the full row set on each request; nothing is cached.
func GetSummaryHandler(c *gin.Context) {
	datasetID, rows, ok := ResolveRows(c)
	if !ok {
		return
	}
	threshold, ok := ParseThreshold(c)
	if !ok {
		return
	}

	avgs, err := metricsaggregator.ComputeAverages(rows)
	if err != nil {
		if errors.Is(err, metricsaggregator.ErrEmptyInput) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dataset has no evaluation rows; summary is undefined"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to compute averages: %v", err)})
		return
	}

	rate, err := metricsaggregator.ComputeHallucinationRate(rows, threshold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to compute hallucination rate: %v", err)})
		return
	}

	baseline := metricsaggregator.DefaultBaseline
	c.JSON(http.StatusOK, SummaryResponse{
		DatasetID:      datasetID,
		Threshold:      threshold,
		TotalTestCases: len(rows),
		AvgGroundedness: MetricCard{
			Name:      "Avg Groundedness",
			Value:     avgs.AvgGroundedness,
			Delta:     metricsaggregator.DeltaAgainstBaseline(avgs.AvgGroundedness, baseline),
			Direction: "higher_is_better",
		},
		AvgRelevance: MetricCard{
			Name:      "Avg Relevance",
			Value:     avgs.AvgRelevance,
			Delta:     metricsaggregator.DeltaAgainstBaseline(avgs.AvgRelevance, baseline),
			Direction: "higher_is_better",
		},
		AvgCoherence: MetricCard{
			Name:      "Avg Coherence",
			Value:     avgs.AvgCoherence,
			Delta:     metricsaggregator.DeltaAgainstBaseline(avgs.AvgCoherence, baseline),
			Direction: "higher_is_better",
		},
		HallucinationRate: MetricCard{
			Name:      "Hallucination Rate",
			Value:     rate,
			Delta:     rate,
			Direction: "lower_is_better",
		},
	})
}

// GetModelComparisonHandler returns per-model summaries in first-occurrence
// order of the underlying rows.
func GetModelComparisonHandler(c *gin.Context) {
	datasetID, rows, ok := ResolveRows(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"dataset_id": datasetID,
		"models":     metricsaggregator.GroupByModel(rows),
	})
}

// GetTrendsHandler returns the synthetic daily trend series. days defaults
// to 30 and is capped at 365.
func GetTrendsHandler(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid days %q: must be a positive integer", raw)})
			return
		}
		if parsed > 365 {
			parsed = 365
		}
		days = parsed
	}
	c.JSON(http.StatusOK, gin.H{"points": metricsaggregator.TrendSeries(trendStart, days)})
}
