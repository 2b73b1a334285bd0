package services

import (
	"context"
	"fmt"

	"github.com/alimgiray/reviewboard/pkg/logger"
	"github.com/sirupsen/logrus"
)

// SyncResult counts what one synchronization stored
type SyncResult struct {
	PullRequests int
	Reviews      int
	Failed       int
}

// SyncService copies pull requests and reviews from GitHub into the store
type SyncService struct {
	github             *GitHubService
	pullRequestService *PullRequestService
	prReviewService    *PRReviewService
}

func NewSyncService(github *GitHubService, pullRequestService *PullRequestService, prReviewService *PRReviewService) *SyncService {
	return &SyncService{
		github:             github,
		pullRequestService: pullRequestService,
		prReviewService:    prReviewService,
	}
}

// Sync fetches every pull request with its reviews. A pull request whose
// reviews cannot be fetched is skipped so its stored reviews stay consistent
// with its stored roster; the others are still synchronized.
func (s *SyncService) Sync(ctx context.Context) (SyncResult, error) {
	var result SyncResult
	log := logger.Component("sync").WithField("repository", s.github.Repository())

	pullRequests, err := s.github.FetchPullRequests(ctx)
	if err != nil {
		return result, err
	}

	for _, githubPR := range pullRequests {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		number := githubPR.GetNumber()
		githubReviews, err := s.github.FetchReviews(ctx, number)
		if err != nil {
			log.WithError(err).WithField("pr_number", number).Warn("Failed to fetch reviews")
			result.Failed++
			continue
		}

		reviews := ConvertReviews(number, githubReviews)
		pr := ConvertPullRequest(githubPR, reviews)
		if err := s.pullRequestService.UpsertPullRequest(&pr); err != nil {
			return result, fmt.Errorf("failed to store pull request #%d: %w", number, err)
		}
		result.PullRequests++

		for i := range reviews {
			if err := s.prReviewService.UpsertReview(&reviews[i]); err != nil {
				return result, fmt.Errorf("failed to store review %d of #%d: %w", reviews[i].GithubReviewID, number, err)
			}
			result.Reviews++
		}
	}

	log.WithFields(logrus.Fields{
		"pull_requests": result.PullRequests,
		"reviews":       result.Reviews,
		"failed":        result.Failed,
	}).Info("Synchronization completed")

	return result, nil
}
