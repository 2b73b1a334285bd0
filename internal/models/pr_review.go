package models

import (
	"strings"
	"time"
)

// ReviewState is the verdict carried by a submitted review
type ReviewState string

const (
	ReviewStateCommented        ReviewState = "commented"
	ReviewStateApproved         ReviewState = "approved"
	ReviewStateChangesRequested ReviewState = "changes_requested"
)

// ParseReviewState accepts both the lower-case form and GitHub's upper-case form
func ParseReviewState(s string) (ReviewState, bool) {
	state := ReviewState(strings.ToLower(strings.TrimSpace(s)))
	switch state {
	case ReviewStateCommented, ReviewStateApproved, ReviewStateChangesRequested:
		return state, true
	}
	return "", false
}

// Review represents a single review submission on a pull request.
// SubmittedAt is kept as the RFC 3339 string received from the source so a
// malformed value only invalidates its own record.
type Review struct {
	ID               string      `json:"id" db:"id"`
	GithubReviewID   int64       `json:"github_review_id" db:"github_review_id"`
	PRID             int         `json:"pr_id" db:"pr_number"`
	ReviewerUsername string      `json:"reviewer_username" db:"reviewer_username"`
	ReviewState      ReviewState `json:"review_state" db:"review_state"`
	SubmittedAt      string      `json:"submitted_at" db:"submitted_at"`
	IsLatestReview   bool        `json:"is_latest_review" db:"is_latest_review"`
}

// SubmittedTime parses SubmittedAt
func (r *Review) SubmittedTime() (time.Time, error) {
	return time.Parse(time.RFC3339, r.SubmittedAt)
}

// FormatTimestamp renders t the way Review.SubmittedAt expects it
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
