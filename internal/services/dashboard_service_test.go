package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/alimgiray/reviewboard/internal/models"
	"github.com/alimgiray/reviewboard/internal/reviewstatus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func seedPullRequests(t *testing.T, pullRequestService *PullRequestService, prReviewService *PRReviewService) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	prs := []models.PullRequest{
		{GithubPRNumber: 1, Title: "Ready", Status: models.PRStatusOpen, RequestedReviewers: []string{"x"}, CreatedAt: created, UpdatedAt: created},
		{GithubPRNumber: 2, Title: "Waiting", Status: models.PRStatusOpen, RequestedReviewers: []string{"x", "y"}, CreatedAt: created.Add(time.Hour), UpdatedAt: created.Add(time.Hour)},
		{GithubPRNumber: 3, Title: "Broken", Status: "reopened", CreatedAt: created.Add(2 * time.Hour), UpdatedAt: created.Add(2 * time.Hour)},
	}
	for i := range prs {
		require.NoError(t, pullRequestService.UpsertPullRequest(&prs[i]))
	}

	reviews := []models.Review{
		{GithubReviewID: 1, PRID: 1, ReviewerUsername: "x", ReviewState: models.ReviewStateApproved, SubmittedAt: "2025-03-01T10:00:00Z"},
		{GithubReviewID: 2, PRID: 2, ReviewerUsername: "x", ReviewState: models.ReviewStateApproved, SubmittedAt: "2025-03-01T11:00:00Z"},
		{GithubReviewID: 3, PRID: 2, ReviewerUsername: "y", ReviewState: models.ReviewStateApproved, SubmittedAt: "not a time"},
	}
	for i := range reviews {
		require.NoError(t, prReviewService.UpsertReview(&reviews[i]))
	}
}

func TestDashboardServiceServesEmptySnapshotBeforeRefresh(t *testing.T) {
	pullRequestService, prReviewService := newTestServices(t)
	seedPullRequests(t, pullRequestService, prReviewService)
	dashboard := NewDashboardService(pullRequestService)

	assert.Empty(t, dashboard.Query(reviewstatus.QuerySpec{}))
	assert.Equal(t, 0, dashboard.Summary().Total)

	_, err := dashboard.Classify(1)
	assert.ErrorIs(t, err, ErrPullRequestNotFound)
}

func TestDashboardServiceRefresh(t *testing.T) {
	pullRequestService, prReviewService := newTestServices(t)
	seedPullRequests(t, pullRequestService, prReviewService)
	dashboard := NewDashboardService(pullRequestService)

	require.NoError(t, dashboard.Refresh())
	first := dashboard.Evaluations()

	require.NoError(t, dashboard.Refresh())
	assert.Equal(t, first, dashboard.Evaluations(), "refreshing an unchanged store yields identical results")

	eval, err := dashboard.Classify(2)
	require.NoError(t, err)
	assert.Equal(t, "1/2 approvals", eval.Classification.Label, "the corrupt review of y is skipped")
	assert.Len(t, eval.Skipped, 1)

	eval, err = dashboard.Classify(3)
	require.NoError(t, err)
	assert.Error(t, eval.Err)
	assert.Equal(t, models.LabelUnknown, eval.Classification.Label)

	ready := dashboard.Query(reviewstatus.QuerySpec{Filter: reviewstatus.FilterSpec{Label: models.LabelReadyToMerge}})
	require.Len(t, ready, 1)
	assert.Equal(t, 1, ready[0].PR.GithubPRNumber)

	stats := dashboard.Summary()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByStatus[models.PRStatusOpen])
	assert.Equal(t, 1, stats.ReadyToMerge)
}

func TestExportWorkbook(t *testing.T) {
	pullRequestService, prReviewService := newTestServices(t)
	seedPullRequests(t, pullRequestService, prReviewService)
	dashboard := NewDashboardService(pullRequestService)
	require.NoError(t, dashboard.Refresh())

	evals := dashboard.Query(reviewstatus.QuerySpec{Sort: reviewstatus.SortSpec{Key: reviewstatus.SortByCreatedAt, Order: reviewstatus.SortAscending}})

	var buf bytes.Buffer
	require.NoError(t, NewExportService().WriteWorkbook(&buf, evals))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "PR", rows[0][0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, models.LabelReadyToMerge, rows[1][4])
	assert.Equal(t, "1/2 approvals", rows[2][4])
	assert.Equal(t, "y", rows[2][9])
	assert.Equal(t, models.LabelUnknown, rows[3][4])
}
