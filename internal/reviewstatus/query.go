package reviewstatus

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alimgiray/reviewboard/internal/models"
)

// Predicate selects evaluations; active predicates are combined with AND
type Predicate func(e *Evaluation) bool

// SortKey names the field a collection is ordered by
type SortKey string

const (
	SortByCreatedAt SortKey = "created_at"
	SortByUpdatedAt SortKey = "updated_at"
	SortByApprovals SortKey = "approvals"
)

// SortOrder is the direction of the primary sort key
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ParseSortKey validates a sort key; empty selects SortByCreatedAt
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(s))); key {
	case "":
		return SortByCreatedAt, nil
	case SortByCreatedAt, SortByUpdatedAt, SortByApprovals:
		return key, nil
	}
	return "", fmt.Errorf("unsupported sort key %q", s)
}

// ParseSortOrder validates a sort order; empty selects SortDescending
func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case "":
		return SortDescending, nil
	case SortAscending, SortDescending:
		return order, nil
	}
	return "", fmt.Errorf("unsupported sort order %q", s)
}

// FilterSpec holds the built-in filters. Zero values are inactive.
type FilterSpec struct {
	Status           models.PRStatus // lifecycle status equality
	Label            string          // classification label equality
	Tag              string          // pull request label membership
	Author           string
	NeedsReview      bool
	ChangesRequested bool
}

// Predicates returns the active built-in filters
func (f FilterSpec) Predicates() []Predicate {
	var predicates []Predicate
	if f.Status != "" {
		status := f.Status
		predicates = append(predicates, func(e *Evaluation) bool { return e.PR.Status == status })
	}
	if f.Label != "" {
		label := f.Label
		predicates = append(predicates, func(e *Evaluation) bool { return e.Classification.Label == label })
	}
	if f.Tag != "" {
		tag := f.Tag
		predicates = append(predicates, func(e *Evaluation) bool { return e.PR.HasLabel(tag) })
	}
	if f.Author != "" {
		author := f.Author
		predicates = append(predicates, func(e *Evaluation) bool { return strings.EqualFold(e.PR.Author, author) })
	}
	if f.NeedsReview {
		predicates = append(predicates, (*Evaluation).NeedsReview)
	}
	if f.ChangesRequested {
		predicates = append(predicates, (*Evaluation).HasChangesRequested)
	}
	return predicates
}

// SortSpec orders a collection. Ties on Key are always broken by PR number
// and then ID, ascending, so the output does not depend on input order.
type SortSpec struct {
	Key   SortKey
	Order SortOrder
}

// QuerySpec combines filters and ordering. Extra predicates are ANDed with
// the built-in ones.
type QuerySpec struct {
	Filter FilterSpec
	Extra  []Predicate
	Sort   SortSpec
}

// Query filters and orders evaluations without modifying evals
func Query(evals []Evaluation, spec QuerySpec) []Evaluation {
	predicates := append(spec.Filter.Predicates(), spec.Extra...)

	result := make([]Evaluation, 0, len(evals))
	for i := range evals {
		if matchesAll(&evals[i], predicates) {
			result = append(result, evals[i])
		}
	}

	less := lessFunc(spec.Sort)
	sort.SliceStable(result, func(i, j int) bool {
		return less(&result[i], &result[j])
	})
	return result
}

func matchesAll(e *Evaluation, predicates []Predicate) bool {
	for _, p := range predicates {
		if !p(e) {
			return false
		}
	}
	return true
}

func lessFunc(spec SortSpec) func(a, b *Evaluation) bool {
	compare := compareFunc(spec.Key)
	descending := spec.Order == SortDescending

	return func(a, b *Evaluation) bool {
		if c := compare(a, b); c != 0 {
			if descending {
				return c > 0
			}
			return c < 0
		}
		if a.PR.GithubPRNumber != b.PR.GithubPRNumber {
			return a.PR.GithubPRNumber < b.PR.GithubPRNumber
		}
		return a.PR.ID < b.PR.ID
	}
}

func compareFunc(key SortKey) func(a, b *Evaluation) int {
	switch key {
	case SortByUpdatedAt:
		return func(a, b *Evaluation) int { return a.PR.UpdatedAt.Compare(b.PR.UpdatedAt) }
	case SortByApprovals:
		return func(a, b *Evaluation) int { return compareInts(a.Classification.Approvals, b.Classification.Approvals) }
	default:
		return func(a, b *Evaluation) int { return a.PR.CreatedAt.Compare(b.PR.CreatedAt) }
	}
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// QueryCollection evaluates prs and applies the query to the result
func QueryCollection(prs []models.PullRequest, reviewsByPR map[int][]models.Review, spec QuerySpec) []Evaluation {
	return Query(EvaluateAll(prs, reviewsByPR), spec)
}
