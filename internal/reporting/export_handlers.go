package reporting

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hallucination-hunter/backend/internal/analysis"
	"hallucination-hunter/backend/internal/datastore"

	"github.com/gin-gonic/gin"
)

// ExportDatasetCSVHandler streams a dataset's rows back out in the same
// schema the ingest accepts, so an export can be re-uploaded unchanged.
func ExportDatasetCSVHandler(c *gin.Context) {
	_, rows, ok := analysis.ResolveRows(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"model", "test_case", "groundedness", "relevance", "coherence", "latency_ms"}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to write CSV header: %v", err)})
		return
	}
	for _, row := range rows {
		record := []string{
			row.Model,
			row.TestCase,
			strconv.FormatFloat(row.Groundedness, 'g', -1, 64),
			strconv.FormatFloat(row.Relevance, 'g', -1, 64),
			strconv.FormatFloat(row.Coherence, 'g', -1, 64),
			strconv.FormatFloat(row.LatencyMs, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to write CSV row: %v", err)})
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to flush CSV: %v", err)})
		return
	}

	filename := fmt.Sprintf("hallucination_eval_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// ExportTracesJSONHandler downloads the trace list as an indented JSON
// document, verdicts derived at export time.
func ExportTracesJSONHandler(c *gin.Context) {
	traces, err := datastore.ListTraces()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to list traces: %v", err)})
		return
	}

	views := make([]analysis.TraceView, 0, len(traces))
	for _, tr := range traces {
		views = append(views, analysis.NewTraceView(tr))
	}

	payload, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to marshal traces: %v", err)})
		return
	}

	filename := fmt.Sprintf("eval_traces_%s.json", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "application/json", payload)
}

// GenerateReportHandler renders the markdown evaluation report for a
// dataset at a given threshold.
func GenerateReportHandler(c *gin.Context) {
	_, rows, ok := analysis.ResolveRows(c)
	if !ok {
		return
	}
	threshold, ok := analysis.ParseThreshold(c)
	if !ok {
		return
	}

	report, err := GenerateReport(rows, threshold, time.Now())
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("Failed to generate report: %v", err)})
		return
	}

	if c.Query("download") == "true" {
		filename := fmt.Sprintf("eval_report_%s.md", time.Now().Format("20060102"))
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report))
}

// ListRecommendationsHandler returns the fixed improvement recommendations.
func ListRecommendationsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, Recommendations)
}
