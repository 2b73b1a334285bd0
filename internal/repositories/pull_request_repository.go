package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/alimgiray/reviewboard/internal/models"
	"github.com/google/uuid"
)

type PullRequestRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewPullRequestRepository(db *sql.DB) *PullRequestRepository {
	return &PullRequestRepository{db: db}
}

const pullRequestColumns = `
	id, github_pr_number, title, author, url, labels, status, merged_at,
	requested_reviewers, pending_reviewers, current_approvals_count,
	github_created_at, github_updated_at`

// Upsert inserts the pull request or updates the row with the same PR number
func (r *PullRequestRepository) Upsert(pr *models.PullRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	labels, err := encodeList(pr.Labels)
	if err != nil {
		return err
	}
	requested, err := encodeList(pr.RequestedReviewers)
	if err != nil {
		return err
	}
	pending, err := encodeList(pr.PendingReviewers)
	if err != nil {
		return err
	}

	var approvals sql.NullInt64
	if pr.CurrentApprovalsCount != nil {
		approvals = sql.NullInt64{Int64: int64(*pr.CurrentApprovalsCount), Valid: true}
	}

	query := `
		INSERT INTO pull_requests (` + pullRequestColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(github_pr_number) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			url = excluded.url,
			labels = excluded.labels,
			status = excluded.status,
			merged_at = excluded.merged_at,
			requested_reviewers = excluded.requested_reviewers,
			pending_reviewers = excluded.pending_reviewers,
			current_approvals_count = excluded.current_approvals_count,
			github_created_at = excluded.github_created_at,
			github_updated_at = excluded.github_updated_at,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`

	return r.db.QueryRow(query,
		uuid.New().String(), pr.GithubPRNumber, pr.Title, pr.Author, pr.URL, labels, string(pr.Status), pr.MergedAt,
		requested, pending, approvals, pr.CreatedAt, pr.UpdatedAt,
	).Scan(&pr.ID)
}

func (r *PullRequestRepository) GetByNumber(number int) (*models.PullRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT ` + pullRequestColumns + ` FROM pull_requests WHERE github_pr_number = ?`
	return scanPullRequest(r.db.QueryRow(query, number))
}

// GetAll returns every stored pull request ordered by PR number
func (r *PullRequestRepository) GetAll() ([]models.PullRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT ` + pullRequestColumns + ` FROM pull_requests ORDER BY github_pr_number`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pullRequests := []models.PullRequest{}
	for rows.Next() {
		pr, err := scanPullRequest(rows)
		if err != nil {
			return nil, err
		}
		pullRequests = append(pullRequests, *pr)
	}

	return pullRequests, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPullRequest(row rowScanner) (*models.PullRequest, error) {
	var (
		pr                         models.PullRequest
		status                     string
		labels, requested, pending string
		approvals                  sql.NullInt64
	)

	err := row.Scan(
		&pr.ID, &pr.GithubPRNumber, &pr.Title, &pr.Author, &pr.URL, &labels, &status, &pr.MergedAt,
		&requested, &pending, &approvals, &pr.CreatedAt, &pr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	pr.Status = models.PRStatus(status)
	if approvals.Valid {
		count := int(approvals.Int64)
		pr.CurrentApprovalsCount = &count
	}
	if pr.Labels, err = decodeList(labels); err != nil {
		return nil, fmt.Errorf("pull request #%d labels: %w", pr.GithubPRNumber, err)
	}
	if pr.RequestedReviewers, err = decodeList(requested); err != nil {
		return nil, fmt.Errorf("pull request #%d requested_reviewers: %w", pr.GithubPRNumber, err)
	}
	if pr.PendingReviewers, err = decodeList(pending); err != nil {
		return nil, fmt.Errorf("pull request #%d pending_reviewers: %w", pr.GithubPRNumber, err)
	}

	return &pr, nil
}

func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	return string(data), err
}

func decodeList(data string) ([]string, error) {
	values := []string{}
	if data == "" {
		return values, nil
	}
	err := json.Unmarshal([]byte(data), &values)
	return values, err
}
