package reviewstatus

import (
	"testing"

	"github.com/alimgiray/reviewboard/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	stats := Summarize(fixtureEvaluations())

	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 5, stats.ByStatus[models.PRStatusOpen])
	assert.Equal(t, 1, stats.ByStatus[models.PRStatusMerged])
	assert.Equal(t, 0, stats.ByStatus[models.PRStatusClosed])
	assert.Equal(t, 3, stats.NeedsReview)
	assert.Equal(t, 2, stats.ReadyToMerge)
	assert.Equal(t, 2, stats.ChangesRequested)
}

func TestSummarizeMatchesFilters(t *testing.T) {
	evals := fixtureEvaluations()
	mergedWithChanges := openPR(7, "x")
	mergedWithChanges.Status = models.PRStatusMerged
	evals = append(evals, Evaluate(mergedWithChanges, []models.Review{review(7, "x", models.ReviewStateChangesRequested, 1)}))

	stats := Summarize(evals)

	testCases := []struct {
		name   string
		filter FilterSpec
		count  int
	}{
		{"needs review", FilterSpec{NeedsReview: true}, stats.NeedsReview},
		{"changes requested", FilterSpec{ChangesRequested: true}, stats.ChangesRequested},
		{"ready to merge", FilterSpec{Label: models.LabelReadyToMerge}, stats.ReadyToMerge},
		{"open", FilterSpec{Status: models.PRStatusOpen}, stats.ByStatus[models.PRStatusOpen]},
		{"merged", FilterSpec{Status: models.PRStatusMerged}, stats.ByStatus[models.PRStatusMerged]},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, len(Query(evals, QuerySpec{Filter: tc.filter})), tc.count)
		})
	}
	assert.Equal(t, 3, stats.ChangesRequested, "terminal pull requests are counted like the filter counts them")
}

func TestSummarizeEmptyCollection(t *testing.T) {
	stats := SummarizeCollection(nil, nil)

	assert.Equal(t, 0, stats.Total)
	assert.Len(t, stats.ByStatus, 3)
	assert.Equal(t, 0, stats.NeedsReview)
}

func TestSummarizeCountsUnknownWithoutFailing(t *testing.T) {
	broken := openPR(1, "x")
	broken.Status = "reopened"
	prs := []models.PullRequest{broken, openPR(2, "x")}

	stats := SummarizeCollection(prs, nil)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[models.PRStatusOpen])
	assert.Equal(t, 1, stats.NeedsReview)
}
