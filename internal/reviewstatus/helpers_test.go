package reviewstatus

import (
	"fmt"
	"time"

	"github.com/alimgiray/reviewboard/internal/models"
)

var baseTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func at(minutes int) string {
	return models.FormatTimestamp(baseTime.Add(time.Duration(minutes) * time.Minute))
}

func review(prNumber int, reviewer string, state models.ReviewState, minutes int) models.Review {
	return models.Review{
		ID:               fmt.Sprintf("%d-%s-%d", prNumber, reviewer, minutes),
		PRID:             prNumber,
		ReviewerUsername: reviewer,
		ReviewState:      state,
		SubmittedAt:      at(minutes),
	}
}

func openPR(number int, requested ...string) models.PullRequest {
	return models.PullRequest{
		ID:                 fmt.Sprintf("pr-%d", number),
		GithubPRNumber:     number,
		Title:              fmt.Sprintf("Connector change %d", number),
		Author:             "octocat",
		Status:             models.PRStatusOpen,
		RequestedReviewers: requested,
		CreatedAt:          baseTime.Add(time.Duration(number) * time.Hour),
		UpdatedAt:          baseTime.Add(time.Duration(number) * time.Hour),
	}
}

func intPtr(v int) *int {
	return &v
}
