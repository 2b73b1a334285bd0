package reviewstatus

import (
	"sort"
	"strings"

	"github.com/alimgiray/reviewboard/internal/models"
)

// ReviewerSets partitions reviewers by their latest review. The three sets
// are disjoint.
type ReviewerSets struct {
	Approved         []string `json:"approved"`
	ChangesRequested []string `json:"changes_requested"`
	Pending          []string `json:"pending"`
}

// TotalRequired is the dynamic approval target: everyone who approved plus
// everyone still expected to respond.
func (s ReviewerSets) TotalRequired() int {
	return len(s.Approved) + len(s.Pending)
}

// BuildSets derives the reviewer sets from normalized reviews and the roster.
//
// A roster member is pending only while they have no review at all; a
// comment-only review takes them out of pending without approving.
// Reviewers outside the roster still count toward approved and changes
// requested but are never pending.
func BuildSets(normalized map[string]NormalizedReview, requestedReviewers []string) ReviewerSets {
	sets := ReviewerSets{
		Approved:         []string{},
		ChangesRequested: []string{},
		Pending:          []string{},
	}

	for reviewer, review := range normalized {
		switch review.State {
		case models.ReviewStateApproved:
			sets.Approved = append(sets.Approved, reviewer)
		case models.ReviewStateChangesRequested:
			sets.ChangesRequested = append(sets.ChangesRequested, reviewer)
		}
	}
	sort.Strings(sets.Approved)
	sort.Strings(sets.ChangesRequested)

	seen := make(map[string]bool, len(requestedReviewers))
	for _, requested := range requestedReviewers {
		reviewer := strings.TrimSpace(requested)
		if reviewer == "" || seen[reviewer] {
			continue
		}
		seen[reviewer] = true
		if _, responded := normalized[reviewer]; !responded {
			sets.Pending = append(sets.Pending, reviewer)
		}
	}

	return sets
}
