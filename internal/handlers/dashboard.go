package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/alimgiray/reviewboard/internal/models"
	"github.com/alimgiray/reviewboard/internal/reviewstatus"
	"github.com/alimgiray/reviewboard/internal/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DashboardHandler struct {
	dashboardService *services.DashboardService
	exportService    *services.ExportService
}

func NewDashboardHandler(dashboardService *services.DashboardService, exportService *services.ExportService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		exportService:    exportService,
	}
}

// ListPullRequests serves the filtered, sorted pull request list
func (h *DashboardHandler) ListPullRequests(c *gin.Context) {
	spec, err := parseQuerySpec(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	evals := h.dashboardService.Query(spec)
	c.JSON(http.StatusOK, gin.H{
		"pull_requests":     newEvaluationResponses(evals),
		"count":             len(evals),
		"snapshot_built_at": h.dashboardService.Snapshot().BuiltAt,
	})
}

// Stats serves the summary counters
func (h *DashboardHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboardService.Summary())
}

// Export serves the filtered list as an XLSX workbook
func (h *DashboardHandler) Export(c *gin.Context) {
	spec, err := parseQuerySpec(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := h.exportService.WriteWorkbook(&buf, h.dashboardService.Query(spec)); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export pull requests"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="pull-requests.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func parseQuerySpec(c *gin.Context) (reviewstatus.QuerySpec, error) {
	var spec reviewstatus.QuerySpec

	if status := strings.ToLower(c.Query("status")); status != "" {
		spec.Filter.Status = models.PRStatus(status)
		if !spec.Filter.Status.IsValid() {
			return spec, fmt.Errorf("unsupported status %q", status)
		}
	}
	spec.Filter.Label = c.Query("label")
	spec.Filter.Tag = c.Query("tag")
	spec.Filter.Author = c.Query("author")

	var err error
	if spec.Filter.NeedsReview, err = boolQuery(c, "needs_review"); err != nil {
		return spec, err
	}
	if spec.Filter.ChangesRequested, err = boolQuery(c, "changes_requested"); err != nil {
		return spec, err
	}

	if spec.Sort.Key, err = reviewstatus.ParseSortKey(c.Query("sort")); err != nil {
		return spec, err
	}
	if spec.Sort.Order, err = reviewstatus.ParseSortOrder(c.Query("order")); err != nil {
		return spec, err
	}

	return spec, nil
}

func boolQuery(c *gin.Context, key string) (bool, error) {
	value := c.Query(key)
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q", key, value)
	}
	return b, nil
}
