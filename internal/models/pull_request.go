package models

import (
	"time"
)

// PRStatus is the lifecycle state of a pull request
type PRStatus string

const (
	PRStatusOpen   PRStatus = "open"
	PRStatusMerged PRStatus = "merged"
	PRStatusClosed PRStatus = "closed"
)

// PRStatuses lists every recognized lifecycle state
var PRStatuses = []PRStatus{PRStatusOpen, PRStatusMerged, PRStatusClosed}

// IsValid reports whether s is a recognized lifecycle state
func (s PRStatus) IsValid() bool {
	switch s {
	case PRStatusOpen, PRStatusMerged, PRStatusClosed:
		return true
	}
	return false
}

// IsTerminal reports whether the pull request can no longer be reviewed
func (s PRStatus) IsTerminal() bool {
	return s == PRStatusMerged || s == PRStatusClosed
}

// PullRequest represents a pull request as served by the backend
type PullRequest struct {
	ID                    string     `json:"id" db:"id"`
	GithubPRNumber        int        `json:"github_pr_number" db:"github_pr_number"`
	Title                 string     `json:"title" db:"title"`
	Author                string     `json:"author" db:"author"`
	URL                   string     `json:"url" db:"url"`
	Labels                []string   `json:"labels" db:"labels"` // stored as a JSON array
	Status                PRStatus   `json:"status" db:"status"`
	MergedAt              *time.Time `json:"merged_at" db:"merged_at"`
	RequestedReviewers    []string   `json:"requested_reviewers" db:"requested_reviewers"` // stored as a JSON array
	PendingReviewers      []string   `json:"pending_reviewers" db:"pending_reviewers"`     // stored as a JSON array
	CurrentApprovalsCount *int       `json:"current_approvals_count" db:"current_approvals_count"`
	CreatedAt             time.Time  `json:"created_at" db:"github_created_at"`
	UpdatedAt             time.Time  `json:"updated_at" db:"github_updated_at"`
}

// HasLabel reports whether the pull request carries the given label
func (pr *PullRequest) HasLabel(label string) bool {
	for _, l := range pr.Labels {
		if l == label {
			return true
		}
	}
	return false
}
