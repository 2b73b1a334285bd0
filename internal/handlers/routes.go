package handlers

import (
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything SetupRoutes mounts
type Handlers struct {
	PullRequest *PullRequestHandler
	Dashboard   *DashboardHandler
	Refresh     *RefreshHandler
	Analytics   *AnalyticsHandler
	Health      *HealthHandler
	NotFound    *NotFoundHandler
}

func SetupRoutes(router *gin.Engine, h Handlers) {
	api := router.Group("/api")
	{
		api.GET("/prs", h.PullRequest.ListPullRequests)
		api.GET("/prs/:number/reviews", h.PullRequest.ListReviews)
		api.GET("/prs/:number/status", h.PullRequest.GetStatus)

		api.GET("/dashboard/prs", h.Dashboard.ListPullRequests)
		api.GET("/dashboard/stats", h.Dashboard.Stats)
		api.GET("/dashboard/export.xlsx", h.Dashboard.Export)

		api.POST("/refresh", h.Refresh.Refresh)

		api.GET("/analytics/:key", h.Analytics.GetCached)
		api.PUT("/analytics/:key", h.Analytics.PutCached)
	}

	router.POST("/webhook/github", h.Refresh.GitHubWebhook)

	// Health check endpoint
	router.GET("/health", h.Health.HealthCheck)

	router.NoRoute(h.NotFound.NotFound)
}
