package repositories

import (
	"database/sql"
	"sync"

	"github.com/alimgiray/reviewboard/internal/models"
	"github.com/google/uuid"
)

type PRReviewRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewPRReviewRepository(db *sql.DB) *PRReviewRepository {
	return &PRReviewRepository{db: db}
}

const reviewColumns = `id, github_review_id, pr_number, reviewer_username, review_state, submitted_at, is_latest_review`

// Upsert inserts the review or updates the row with the same GitHub review ID
func (r *PRReviewRepository) Upsert(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO pr_reviews (` + reviewColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(github_review_id) DO UPDATE SET
			pr_number = excluded.pr_number,
			reviewer_username = excluded.reviewer_username,
			review_state = excluded.review_state,
			submitted_at = excluded.submitted_at,
			is_latest_review = excluded.is_latest_review,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`

	return r.db.QueryRow(query,
		uuid.New().String(), review.GithubReviewID, review.PRID, review.ReviewerUsername,
		string(review.ReviewState), review.SubmittedAt, review.IsLatestReview,
	).Scan(&review.ID)
}

// GetByPRNumber returns the reviews of one pull request in insertion order
func (r *PRReviewRepository) GetByPRNumber(prNumber int) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT ` + reviewColumns + ` FROM pr_reviews WHERE pr_number = ? ORDER BY rowid`

	rows, err := r.db.Query(query, prNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

// GetAllGroupedByPR returns every review keyed by PR number
func (r *PRReviewRepository) GetAllGroupedByPR() (map[int][]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT ` + reviewColumns + ` FROM pr_reviews ORDER BY pr_number, rowid`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grouped := make(map[int][]models.Review)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		grouped[review.PRID] = append(grouped[review.PRID], review)
	}

	return grouped, rows.Err()
}

func scanReview(row rowScanner) (models.Review, error) {
	var (
		review models.Review
		state  string
	)
	err := row.Scan(
		&review.ID, &review.GithubReviewID, &review.PRID, &review.ReviewerUsername,
		&state, &review.SubmittedAt, &review.IsLatestReview,
	)
	review.ReviewState = models.ReviewState(state)
	return review, err
}
