package services

import (
	"fmt"
	"time"

	"github.com/alimgiray/reviewboard/internal/models"
	"github.com/alimgiray/reviewboard/internal/repositories"
)

// Snapshot is a consistent, read-only view of the pull requests and their
// reviews. It is built in one go and never modified afterwards.
type Snapshot struct {
	PullRequests []models.PullRequest
	ReviewsByPR  map[int][]models.Review
	BuiltAt      time.Time
}

// EmptySnapshot is served until the first refresh completes
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		PullRequests: []models.PullRequest{},
		ReviewsByPR:  map[int][]models.Review{},
	}
}

type PullRequestService struct {
	pullRequestRepo *repositories.PullRequestRepository
	prReviewRepo    *repositories.PRReviewRepository
}

func NewPullRequestService(pullRequestRepo *repositories.PullRequestRepository, prReviewRepo *repositories.PRReviewRepository) *PullRequestService {
	return &PullRequestService{
		pullRequestRepo: pullRequestRepo,
		prReviewRepo:    prReviewRepo,
	}
}

func (s *PullRequestService) UpsertPullRequest(pr *models.PullRequest) error {
	return s.pullRequestRepo.Upsert(pr)
}

func (s *PullRequestService) GetPullRequests() ([]models.PullRequest, error) {
	return s.pullRequestRepo.GetAll()
}

func (s *PullRequestService) GetPullRequestByNumber(number int) (*models.PullRequest, error) {
	return s.pullRequestRepo.GetByNumber(number)
}

// BuildSnapshot reads pull requests and reviews into a new Snapshot
func (s *PullRequestService) BuildSnapshot() (*Snapshot, error) {
	pullRequests, err := s.pullRequestRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load pull requests: %w", err)
	}

	reviewsByPR, err := s.prReviewRepo.GetAllGroupedByPR()
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	return &Snapshot{
		PullRequests: pullRequests,
		ReviewsByPR:  reviewsByPR,
		BuiltAt:      time.Now(),
	}, nil
}
