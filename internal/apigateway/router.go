package apigateway

import (
	"net/http"

	"hallucination-hunter/backend/internal/analysis"
	"hallucination-hunter/backend/internal/auth"
	"hallucination-hunter/backend/internal/datamanagement"
	"hallucination-hunter/backend/internal/reporting"

	"github.com/gin-gonic/gin"
)

// SetupRouter initializes the main Gin router for the API gateway: public
// auth routes plus the authenticated admin surface.
func SetupRouter() *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/login", auth.LoginHandler)
		authRoutes.POST("/logout", auth.LogoutHandler)
	}

	adminRoutes := router.Group("/admin")
	adminRoutes.Use(auth.AuthMiddleware())
	{
		// Dataset management
		datasetRoutes := adminRoutes.Group("/datasets")
		{
			datasetRoutes.POST("", datamanagement.UploadDatasetHandler)
			datasetRoutes.GET("", datamanagement.ListDatasetsHandler)
			datasetRoutes.GET("/:id", datamanagement.GetDatasetHandler)
			datasetRoutes.GET("/:id/original.csv", datamanagement.DownloadDatasetOriginalHandler)
			datasetRoutes.DELETE("/:id", datamanagement.DeleteDatasetHandler)
		}

		// Overview, model comparison, trends
		metricsRoutes := adminRoutes.Group("/metrics")
		{
			metricsRoutes.GET("/summary", analysis.GetSummaryHandler)
			metricsRoutes.GET("/models", analysis.GetModelComparisonHandler)
			metricsRoutes.GET("/trends", analysis.GetTrendsHandler)
		}

		// Trace analysis
		traceRoutes := adminRoutes.Group("/traces")
		{
			traceRoutes.GET("", analysis.ListTracesHandler)
			traceRoutes.GET("/export.json", reporting.ExportTracesJSONHandler)
			traceRoutes.GET("/:id", analysis.GetTraceHandler)
		}

		// Exports and reporting
		adminRoutes.GET("/exports/rows.csv", reporting.ExportDatasetCSVHandler)
		adminRoutes.GET("/reports/evaluation", reporting.GenerateReportHandler)
		adminRoutes.GET("/recommendations", reporting.ListRecommendationsHandler)
	}

	return router
}
