package reporting

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"hallucination-hunter/backend/internal/metricsaggregator"
)

// Recommendation is one prioritized improvement suggestion shown on the
// trends view. The list is fixed editorial content, not derived from data.
type Recommendation struct {
	Priority string `json:"priority"`
	Issue    string `json:"issue"`
	Solution string `json:"solution"`
}

// Recommendations is the fixed improvement list.
var Recommendations = []Recommendation{
	{
		Priority: "High",
		Issue:    "Vague contract terms causing hallucinations",
		Solution: "Add explicit few-shot examples for ambiguous clauses",
	},
	{
		Priority: "Medium",
		Issue:    "Latency variance in peak hours",
		Solution: "Implement response caching for common queries",
	},
	{
		Priority: "Low",
		Issue:    "Minor coherence drops on multi-step reasoning",
		Solution: "Consider chain-of-thought prompting for complex questions",
	},
}

// reportClosingNotes are the fixed recommendation lines of the generated
// report.
var reportClosingNotes = []string{
	"Continue monitoring groundedness on contract clauses",
	"Consider fine-tuning for domain-specific terminology",
	"Implement human-in-the-loop for high-stakes decisions",
}

// ReportData is the view model for the markdown evaluation report.
type ReportData struct {
	GeneratedAt       string
	TotalTestCases    int
	AvgGroundedness   string
	AvgRelevance      string
	AvgCoherence      string
	HallucinationRate string
	Models            []string
	Recommendations   []string
}

var reportTemplate = template.Must(template.New("evaluation-report").Parse(`# Hallucination Evaluation Report
Generated: {{.GeneratedAt}}

## Summary
- Total Test Cases: {{.TotalTestCases}}
- Average Groundedness: {{.AvgGroundedness}}
- Average Relevance: {{.AvgRelevance}}
- Average Coherence: {{.AvgCoherence}}
- Hallucination Rate: {{.HallucinationRate}}

## Models Evaluated
{{range $i, $m := .Models}}{{if $i}}, {{end}}{{$m}}{{end}}

## Recommendations
{{range .Recommendations}}{{.}}
{{end}}`))

// percent formats a [0,1] value as a one-decimal percentage, the way the
// overview cards display it.
func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// distinctModels returns each model once, in first-occurrence order.
func distinctModels(rows []metricsaggregator.Row) []string {
	seen := map[string]bool{}
	models := []string{}
	for _, r := range rows {
		if !seen[r.Model] {
			seen[r.Model] = true
			models = append(models, r.Model)
		}
	}
	return models
}

// GenerateReport renders the markdown evaluation report for a row set. The
// same aggregation functions back the report and the overview endpoint, so
// the two can never disagree. Returns ErrEmptyInput via ComputeAverages for
// an empty row set.
func GenerateReport(rows []metricsaggregator.Row, threshold float64, now time.Time) (string, error) {
	avgs, err := metricsaggregator.ComputeAverages(rows)
	if err != nil {
		return "", err
	}
	rate, err := metricsaggregator.ComputeHallucinationRate(rows, threshold)
	if err != nil {
		return "", err
	}

	numbered := make([]string, 0, len(reportClosingNotes))
	for i, note := range reportClosingNotes {
		numbered = append(numbered, fmt.Sprintf("%d. %s", i+1, note))
	}

	data := ReportData{
		GeneratedAt:       now.Format("2006-01-02 15:04"),
		TotalTestCases:    len(rows),
		AvgGroundedness:   percent(avgs.AvgGroundedness),
		AvgRelevance:      percent(avgs.AvgRelevance),
		AvgCoherence:      percent(avgs.AvgCoherence),
		HallucinationRate: percent(rate),
		Models:            distinctModels(rows),
		Recommendations:   numbered,
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render evaluation report: %w", err)
	}
	return buf.String(), nil
}
