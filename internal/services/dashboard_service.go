package services

import (
	"errors"
	"sync/atomic"

	"github.com/alimgiray/reviewboard/internal/models"
	"github.com/alimgiray/reviewboard/internal/reviewstatus"
	"github.com/alimgiray/reviewboard/pkg/logger"
	"github.com/sirupsen/logrus"
)

var ErrPullRequestNotFound = errors.New("pull request not found")

// DashboardService answers view queries from the current snapshot.
// Classifications are recomputed on every call and never stored.
type DashboardService struct {
	pullRequestService *PullRequestService
	current            atomic.Pointer[Snapshot]
}

func NewDashboardService(pullRequestService *PullRequestService) *DashboardService {
	s := &DashboardService{pullRequestService: pullRequestService}
	s.current.Store(EmptySnapshot())
	return s
}

// Refresh builds a new snapshot from the store and swaps it in. Readers keep
// the previous snapshot until the swap. On error the previous snapshot stays.
func (s *DashboardService) Refresh() error {
	snapshot, err := s.pullRequestService.BuildSnapshot()
	if err != nil {
		return err
	}

	s.reportIntegrityIssues(snapshot)
	s.current.Store(snapshot)
	return nil
}

// Snapshot returns the snapshot currently served
func (s *DashboardService) Snapshot() *Snapshot {
	return s.current.Load()
}

// Evaluations classifies every pull request of the current snapshot
func (s *DashboardService) Evaluations() []reviewstatus.Evaluation {
	snapshot := s.Snapshot()
	return reviewstatus.EvaluateAll(snapshot.PullRequests, snapshot.ReviewsByPR)
}

// Classify evaluates one pull request of the current snapshot
func (s *DashboardService) Classify(prNumber int) (reviewstatus.Evaluation, error) {
	snapshot := s.Snapshot()
	for _, pr := range snapshot.PullRequests {
		if pr.GithubPRNumber == prNumber {
			return reviewstatus.Evaluate(pr, snapshot.ReviewsByPR[prNumber]), nil
		}
	}
	return reviewstatus.Evaluation{}, ErrPullRequestNotFound
}

// Query filters and sorts the current snapshot
func (s *DashboardService) Query(spec reviewstatus.QuerySpec) []reviewstatus.Evaluation {
	return reviewstatus.Query(s.Evaluations(), spec)
}

// Summary returns the counters of the current snapshot
func (s *DashboardService) Summary() models.DashboardStats {
	return reviewstatus.Summarize(s.Evaluations())
}

func (s *DashboardService) reportIntegrityIssues(snapshot *Snapshot) {
	log := logger.Component("dashboard")
	skipped, failed := 0, 0

	for _, eval := range reviewstatus.EvaluateAll(snapshot.PullRequests, snapshot.ReviewsByPR) {
		for _, v := range eval.Skipped {
			skipped++
			log.WithError(v).WithField("pr_number", eval.PR.GithubPRNumber).Warn("Review record skipped")
		}
		if eval.Err != nil {
			failed++
			log.WithError(eval.Err).WithField("pr_number", eval.PR.GithubPRNumber).Error("Pull request cannot be classified")
		}
	}

	log.WithFields(logrus.Fields{
		"pull_requests":    len(snapshot.PullRequests),
		"skipped_reviews":  skipped,
		"unclassified_prs": failed,
	}).Info("Snapshot refreshed")
}
