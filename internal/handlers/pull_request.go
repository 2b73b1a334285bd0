package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/alimgiray/reviewboard/internal/models"
	"github.com/alimgiray/reviewboard/internal/reviewstatus"
	"github.com/alimgiray/reviewboard/internal/services"
	"github.com/gin-gonic/gin"
)

// evaluationResponse is the view model of one classified pull request
type evaluationResponse struct {
	PullRequest    models.PullRequest          `json:"pull_request"`
	Classification models.StatusClassification `json:"classification"`
	Reviewers      reviewstatus.ReviewerSets   `json:"reviewers"`
	SkippedReviews int                         `json:"skipped_reviews"`
	Error          string                      `json:"error,omitempty"`
}

func newEvaluationResponse(eval reviewstatus.Evaluation) evaluationResponse {
	resp := evaluationResponse{
		PullRequest:    eval.PR,
		Classification: eval.Classification,
		Reviewers:      eval.Sets,
		SkippedReviews: len(eval.Skipped),
	}
	if eval.Err != nil {
		resp.Error = eval.Err.Error()
	}
	return resp
}

func newEvaluationResponses(evals []reviewstatus.Evaluation) []evaluationResponse {
	out := make([]evaluationResponse, 0, len(evals))
	for _, eval := range evals {
		out = append(out, newEvaluationResponse(eval))
	}
	return out
}

type PullRequestHandler struct {
	pullRequestService *services.PullRequestService
	prReviewService    *services.PRReviewService
	dashboardService   *services.DashboardService
}

func NewPullRequestHandler(pullRequestService *services.PullRequestService, prReviewService *services.PRReviewService, dashboardService *services.DashboardService) *PullRequestHandler {
	return &PullRequestHandler{
		pullRequestService: pullRequestService,
		prReviewService:    prReviewService,
		dashboardService:   dashboardService,
	}
}

// ListPullRequests serves GET /api/prs
func (h *PullRequestHandler) ListPullRequests(c *gin.Context) {
	pullRequests, err := h.pullRequestService.GetPullRequests()
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pull requests"})
		return
	}

	c.JSON(http.StatusOK, pullRequests)
}

// ListReviews serves GET /api/prs/:number/reviews
func (h *PullRequestHandler) ListReviews(c *gin.Context) {
	number, ok := prNumberParam(c)
	if !ok {
		return
	}

	if _, err := h.pullRequestService.GetPullRequestByNumber(number); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pull request not found"})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pull request"})
		return
	}

	reviews, err := h.prReviewService.GetReviewsByPRNumber(number)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reviews"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// GetStatus serves GET /api/prs/:number/status from the current snapshot
func (h *PullRequestHandler) GetStatus(c *gin.Context) {
	number, ok := prNumberParam(c)
	if !ok {
		return
	}

	eval, err := h.dashboardService.Classify(number)
	if errors.Is(err, services.ErrPullRequestNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pull request not found"})
		return
	}

	c.JSON(http.StatusOK, newEvaluationResponse(eval))
}

func prNumberParam(c *gin.Context) (int, bool) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pull request number"})
		return 0, false
	}
	return number, true
}
