package handlers

import (
	"errors"
	"net/http"

	"github.com/alimgiray/reviewboard/internal/services"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsCacheService *services.AnalyticsCacheService
}

func NewAnalyticsHandler(analyticsCacheService *services.AnalyticsCacheService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsCacheService: analyticsCacheService,
	}
}

// GetCached serves GET /api/analytics/:key
func (h *AnalyticsHandler) GetCached(c *gin.Context) {
	entry, ok, err := h.analyticsCacheService.Get(c.Param("key"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidAnalyticsKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read analytics cache"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No cached value"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// PutCached serves PUT /api/analytics/:key; the body must be a JSON document
func (h *AnalyticsHandler) PutCached(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	entry, err := h.analyticsCacheService.Put(c.Param("key"), body)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAnalyticsKey) || errors.Is(err, services.ErrInvalidAnalyticsPayload) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store analytics value"})
		return
	}

	c.JSON(http.StatusOK, entry)
}
