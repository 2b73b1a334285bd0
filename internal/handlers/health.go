package handlers

import (
	"net/http"

	"github.com/alimgiray/reviewboard/internal/services"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	dashboardService *services.DashboardService
}

func NewHealthHandler(dashboardService *services.DashboardService) *HealthHandler {
	return &HealthHandler{dashboardService: dashboardService}
}

// HealthCheck reports liveness and the age of the current snapshot
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	snapshot := h.dashboardService.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"pull_requests":     len(snapshot.PullRequests),
		"snapshot_built_at": snapshot.BuiltAt,
	})
}
