package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/alimgiray/reviewboard/internal/models"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GitHubService reads pull requests and reviews of one repository
type GitHubService struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGitHubService creates a client authenticated with token, or an
// anonymous one when token is empty
func NewGitHubService(token, owner, repo string) *GitHubService {
	client := github.NewClient(nil)
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		client = github.NewClient(oauth2.NewClient(context.Background(), ts))
	}
	return NewGitHubServiceWithClient(client, owner, repo)
}

func NewGitHubServiceWithClient(client *github.Client, owner, repo string) *GitHubService {
	return &GitHubService{
		client: client,
		owner:  owner,
		repo:   repo,
	}
}

// Repository returns "owner/repo"
func (s *GitHubService) Repository() string {
	return s.owner + "/" + s.repo
}

// FetchPullRequests lists open and closed pull requests, following pagination
func (s *GitHubService) FetchPullRequests(ctx context.Context) ([]*github.PullRequest, error) {
	var allPRs []*github.PullRequest
	opts := &github.PullRequestListOptions{
		State: "all",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	for {
		prs, resp, err := s.client.PullRequests.List(ctx, s.owner, s.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests for %s: %w", s.Repository(), err)
		}
		allPRs = append(allPRs, prs...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allPRs, nil
}

// FetchReviews lists every review of a pull request, following pagination
func (s *GitHubService) FetchReviews(ctx context.Context, prNumber int) ([]*github.PullRequestReview, error) {
	var allReviews []*github.PullRequestReview
	opts := &github.ListOptions{
		PerPage: 100,
	}

	for {
		reviews, resp, err := s.client.PullRequests.ListReviews(ctx, s.owner, s.repo, prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list reviews for %s#%d: %w", s.Repository(), prNumber, err)
		}
		allReviews = append(allReviews, reviews...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allReviews, nil
}

// ConvertReviews maps GitHub reviews to models. Unsubmitted (PENDING)
// reviews are dropped and dismissed reviews count as comments: the reviewer
// has responded but no longer approves or blocks. IsLatestReview is set on
// the last review of each reviewer in GitHub's chronological order.
func ConvertReviews(prNumber int, githubReviews []*github.PullRequestReview) []models.Review {
	reviews := make([]models.Review, 0, len(githubReviews))
	latestIndex := make(map[string]int)

	for _, gr := range githubReviews {
		state := strings.ToLower(gr.GetState())
		switch state {
		case "pending":
			continue
		case "dismissed":
			state = string(models.ReviewStateCommented)
		}

		review := models.Review{
			GithubReviewID:   gr.GetID(),
			PRID:             prNumber,
			ReviewerUsername: gr.GetUser().GetLogin(),
			ReviewState:      models.ReviewState(state),
		}
		if gr.SubmittedAt != nil {
			review.SubmittedAt = models.FormatTimestamp(gr.SubmittedAt.Time)
		}

		latestIndex[review.ReviewerUsername] = len(reviews)
		reviews = append(reviews, review)
	}

	for _, i := range latestIndex {
		reviews[i].IsLatestReview = true
	}

	return reviews
}

// ConvertPullRequest maps a GitHub pull request to the model. GitHub drops
// reviewers from requested_reviewers once they submit, so the roster is the
// still-requested reviewers followed by everyone who has reviewed.
func ConvertPullRequest(githubPR *github.PullRequest, reviews []models.Review) models.PullRequest {
	pr := models.PullRequest{
		GithubPRNumber: githubPR.GetNumber(),
		Title:          githubPR.GetTitle(),
		Author:         githubPR.GetUser().GetLogin(),
		URL:            githubPR.GetHTMLURL(),
		Labels:         []string{},
		Status:         models.PRStatusOpen,
	}

	if githubPR.CreatedAt != nil {
		pr.CreatedAt = githubPR.CreatedAt.Time
	}
	if githubPR.UpdatedAt != nil {
		pr.UpdatedAt = githubPR.UpdatedAt.Time
	}
	if githubPR.MergedAt != nil {
		mergedAt := githubPR.MergedAt.Time
		pr.MergedAt = &mergedAt
		pr.Status = models.PRStatusMerged
	} else if githubPR.GetState() == "closed" {
		pr.Status = models.PRStatusClosed
	}

	for _, label := range githubPR.Labels {
		pr.Labels = append(pr.Labels, label.GetName())
	}

	reviewed := make(map[string]bool)
	for _, review := range reviews {
		reviewed[review.ReviewerUsername] = true
	}

	seen := make(map[string]bool)
	pr.RequestedReviewers = []string{}
	pr.PendingReviewers = []string{}
	for _, user := range githubPR.RequestedReviewers {
		login := user.GetLogin()
		if login == "" || seen[login] {
			continue
		}
		seen[login] = true
		pr.RequestedReviewers = append(pr.RequestedReviewers, login)
		if !reviewed[login] {
			pr.PendingReviewers = append(pr.PendingReviewers, login)
		}
	}
	for _, review := range reviews {
		login := review.ReviewerUsername
		if login == "" || seen[login] || login == pr.Author {
			continue
		}
		seen[login] = true
		pr.RequestedReviewers = append(pr.RequestedReviewers, login)
	}

	return pr
}
