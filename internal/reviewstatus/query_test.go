package reviewstatus

import (
	"testing"

	"github.com/alimgiray/reviewboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbers(evals []Evaluation) []int {
	out := make([]int, 0, len(evals))
	for _, e := range evals {
		out = append(out, e.PR.GithubPRNumber)
	}
	return out
}

func reversed(evals []Evaluation) []Evaluation {
	out := make([]Evaluation, len(evals))
	for i, e := range evals {
		out[len(evals)-1-i] = e
	}
	return out
}

func fixtureEvaluations() []Evaluation {
	ready := openPR(1, "x")
	ready.Labels = []string{"connector"}
	partial := openPR(2, "x", "y")
	blocked := openPR(3, "x", "y")
	blocked.Author = "hubot"
	untouched := openPR(4, "x")
	untouched.Labels = []string{"connector", "docs"}
	merged := openPR(5)
	merged.Status = models.PRStatusMerged

	reviews := map[int][]models.Review{
		1: {review(1, "x", models.ReviewStateApproved, 1)},
		2: {review(2, "x", models.ReviewStateApproved, 1)},
		3: {review(3, "x", models.ReviewStateApproved, 1), review(3, "y", models.ReviewStateChangesRequested, 2), review(3, "z", models.ReviewStateApproved, 3)},
	}
	blockedPending := openPR(6, "x", "y")
	reviews[6] = []models.Review{review(6, "y", models.ReviewStateChangesRequested, 1)}

	return EvaluateAll([]models.PullRequest{ready, partial, blocked, untouched, merged, blockedPending}, reviews)
}

func TestQueryFilters(t *testing.T) {
	evals := fixtureEvaluations()
	sortByNumber := SortSpec{Key: SortByApprovals, Order: SortAscending}

	testCases := []struct {
		name     string
		filter   FilterSpec
		expected []int
	}{
		{"no filters", FilterSpec{}, []int{4, 5, 6, 1, 2, 3}},
		{"lifecycle status", FilterSpec{Status: models.PRStatusMerged}, []int{5}},
		{"classification label", FilterSpec{Label: models.LabelReadyToMerge}, []int{1, 3}},
		{"needs review", FilterSpec{NeedsReview: true}, []int{4, 5, 6}},
		{"changes requested", FilterSpec{ChangesRequested: true}, []int{6, 3}},
		{"needs review and changes requested", FilterSpec{NeedsReview: true, ChangesRequested: true}, []int{6}},
		{"pull request label", FilterSpec{Tag: "connector"}, []int{4, 1}},
		{"author", FilterSpec{Author: "HUBOT"}, []int{3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Query(evals, QuerySpec{Filter: tc.filter, Sort: sortByNumber})
			assert.Equal(t, tc.expected, numbers(result))
		})
	}
}

func TestQueryExtraPredicates(t *testing.T) {
	evals := fixtureEvaluations()
	even := func(e *Evaluation) bool { return e.PR.GithubPRNumber%2 == 0 }

	result := Query(evals, QuerySpec{
		Filter: FilterSpec{NeedsReview: true},
		Extra:  []Predicate{even},
		Sort:   SortSpec{Key: SortByCreatedAt, Order: SortAscending},
	})

	assert.Equal(t, []int{4, 6}, numbers(result))
}

func TestQuerySortKeys(t *testing.T) {
	evals := fixtureEvaluations()

	created := Query(evals, QuerySpec{Sort: SortSpec{Key: SortByCreatedAt, Order: SortDescending}})
	assert.Equal(t, []int{6, 5, 4, 3, 2, 1}, numbers(created))

	evals[0].PR.UpdatedAt = evals[5].PR.UpdatedAt.Add(1)
	updated := Query(evals, QuerySpec{Sort: SortSpec{Key: SortByUpdatedAt, Order: SortDescending}})
	assert.Equal(t, 1, updated[0].PR.GithubPRNumber)

	approvals := Query(evals, QuerySpec{Sort: SortSpec{Key: SortByApprovals, Order: SortDescending}})
	assert.Equal(t, []int{3, 1, 2, 4, 5, 6}, numbers(approvals))
}

func TestQuerySortIsIndependentOfInputOrder(t *testing.T) {
	evals := fixtureEvaluations()

	for _, order := range []SortOrder{SortAscending, SortDescending} {
		spec := QuerySpec{Sort: SortSpec{Key: SortByApprovals, Order: order}}

		forward := Query(evals, spec)
		backward := Query(reversed(evals), spec)

		assert.Equal(t, numbers(forward), numbers(backward))
	}
}

func TestQueryDoesNotMutateInput(t *testing.T) {
	evals := fixtureEvaluations()
	before := numbers(evals)

	Query(evals, QuerySpec{Sort: SortSpec{Key: SortByCreatedAt, Order: SortDescending}})

	assert.Equal(t, before, numbers(evals))
}

func TestQueryEmptyCollection(t *testing.T) {
	result := QueryCollection(nil, nil, QuerySpec{Filter: FilterSpec{NeedsReview: true}})

	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestParseSortSpec(t *testing.T) {
	key, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortByCreatedAt, key)

	key, err = ParseSortKey("Approvals")
	require.NoError(t, err)
	assert.Equal(t, SortByApprovals, key)

	_, err = ParseSortKey("title")
	assert.Error(t, err)

	order, err := ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, SortDescending, order)

	_, err = ParseSortOrder("sideways")
	assert.Error(t, err)
}
