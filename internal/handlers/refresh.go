package handlers

import (
	"net/http"

	"github.com/alimgiray/reviewboard/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v57/github"
)

// RefreshTrigger queues a refresh; false means one is already pending
type RefreshTrigger interface {
	Trigger() bool
}

type RefreshHandler struct {
	trigger       RefreshTrigger
	webhookSecret []byte
}

func NewRefreshHandler(trigger RefreshTrigger, webhookSecret string) *RefreshHandler {
	return &RefreshHandler{
		trigger:       trigger,
		webhookSecret: []byte(webhookSecret),
	}
}

// Refresh serves POST /api/refresh
func (h *RefreshHandler) Refresh(c *gin.Context) {
	queued := h.trigger.Trigger()
	c.JSON(http.StatusAccepted, gin.H{"queued": queued})
}

// GitHubWebhook serves POST /webhook/github. Pull request and review events
// schedule a refresh, everything else is acknowledged and ignored.
func (h *RefreshHandler) GitHubWebhook(c *gin.Context) {
	payload, err := github.ValidatePayload(c.Request, h.webhookSecret)
	if err != nil {
		logger.Component("webhook").WithError(err).Warn("Rejected webhook delivery")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook signature"})
		return
	}

	eventType := github.WebHookType(c.Request)
	event, err := github.ParseWebHook(eventType, payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported webhook payload"})
		return
	}

	log := logger.Component("webhook").WithField("event", eventType)

	switch e := event.(type) {
	case *github.PingEvent:
		c.JSON(http.StatusOK, gin.H{"status": "pong"})
	case *github.PullRequestEvent:
		log.WithField("pr_number", e.GetNumber()).Info("Pull request event received")
		c.JSON(http.StatusAccepted, gin.H{"queued": h.trigger.Trigger()})
	case *github.PullRequestReviewEvent:
		log.WithField("pr_number", e.GetPullRequest().GetNumber()).Info("Pull request review event received")
		c.JSON(http.StatusAccepted, gin.H{"queued": h.trigger.Trigger()})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}
