package analysis

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"hallucination-hunter/backend/internal/datastore"
	"hallucination-hunter/backend/internal/metricsaggregator"

	"github.com/gin-gonic/gin"
)

// TraceView is a trace with its verdict derived at read time. Verdicts are
// never stored; ClassifyVerdict is the only place the thresholds live.
type TraceView struct {
	ID                string                    `json:"id"`
	Query             string                    `json:"query"`
	Context           string                    `json:"context"`
	Response          string                    `json:"response"`
	GroundednessScore float64                   `json:"groundedness_score"`
	Reasoning         string                    `json:"reasoning"`
	Verdict           metricsaggregator.Verdict `json:"verdict"`
	CreatedAt         time.Time                 `json:"created_at"`
}

// NewTraceView derives the display form of a stored trace.
func NewTraceView(tr *datastore.Trace) TraceView {
	return TraceView{
		ID:                tr.ID,
		Query:             tr.Query,
		Context:           tr.Context,
		Response:          tr.Response,
		GroundednessScore: tr.GroundednessScore,
		Reasoning:         tr.Reasoning,
		Verdict:           metricsaggregator.ClassifyVerdict(tr.GroundednessScore),
		CreatedAt:         tr.CreatedAt,
	}
}

// ListTracesHandler returns all traces with derived verdicts.
func ListTracesHandler(c *gin.Context) {
	traces, err := datastore.ListTraces()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to list traces: %v", err)})
		return
	}

	views := make([]TraceView, 0, len(traces))
	for _, tr := range traces {
		views = append(views, NewTraceView(tr))
	}
	c.JSON(http.StatusOK, views)
}

// GetTraceHandler returns a single trace with its derived verdict.
func GetTraceHandler(c *gin.Context) {
	tr, err := datastore.GetTrace(c.Param("id"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to retrieve trace: %v", err)})
		}
		return
	}
	c.JSON(http.StatusOK, NewTraceView(tr))
}
