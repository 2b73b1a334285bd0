// Package reviewstatus derives approval counts, pending reviewers and a
// single status classification from a pull request and its reviews.
//
// Every function in this package is pure: inputs are never mutated and the
// same snapshot always yields the same result. Views must call into this
// package instead of re-deriving status on their own.
package reviewstatus

import (
	"strings"
	"time"

	"github.com/alimgiray/reviewboard/internal/models"
)

// NormalizedReview is the authoritative latest review of one reviewer
type NormalizedReview struct {
	State       models.ReviewState
	SubmittedAt time.Time
}

// Normalize collapses the reviews of one pull request into the latest review
// per reviewer, chosen by SubmittedAt. When two records of a reviewer share
// the same timestamp the one that appears later in reviews wins.
// IsLatestReview is not consulted.
//
// Records with a malformed timestamp, an unknown state or no reviewer are
// skipped and reported; they never prevent the other records from being used.
func Normalize(reviews []models.Review) (map[string]NormalizedReview, []*ValidationError) {
	latest := make(map[string]NormalizedReview)
	var skipped []*ValidationError

	for i := range reviews {
		review := &reviews[i]

		reviewer := strings.TrimSpace(review.ReviewerUsername)
		if reviewer == "" {
			skipped = append(skipped, &ValidationError{
				ReviewID: review.ID,
				Field:    "reviewer_username",
				Err:      ErrMissingReviewer,
			})
			continue
		}

		state, ok := models.ParseReviewState(string(review.ReviewState))
		if !ok {
			skipped = append(skipped, &ValidationError{
				ReviewID: review.ID,
				Reviewer: reviewer,
				Field:    "review_state",
				Value:    string(review.ReviewState),
				Err:      ErrUnknownReviewState,
			})
			continue
		}

		submittedAt, err := review.SubmittedTime()
		if err != nil {
			skipped = append(skipped, &ValidationError{
				ReviewID: review.ID,
				Reviewer: reviewer,
				Field:    "submitted_at",
				Value:    review.SubmittedAt,
				Err:      ErrMalformedTimestamp,
			})
			continue
		}

		current, seen := latest[reviewer]
		// !Before keeps the later record on equal timestamps
		if !seen || !submittedAt.Before(current.SubmittedAt) {
			latest[reviewer] = NormalizedReview{State: state, SubmittedAt: submittedAt}
		}
	}

	return latest, skipped
}
