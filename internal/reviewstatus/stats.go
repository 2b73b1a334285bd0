package reviewstatus

import "github.com/alimgiray/reviewboard/internal/models"

// Summarize reduces evaluations into dashboard counters in a single pass.
// Each counter uses the predicate of the filter with the same name, so a
// counter always equals the size of its filtered list.
func Summarize(evals []Evaluation) models.DashboardStats {
	stats := models.NewDashboardStats()

	for i := range evals {
		e := &evals[i]
		stats.Total++
		if e.PR.Status.IsValid() {
			stats.ByStatus[e.PR.Status]++
		}
		if e.NeedsReview() {
			stats.NeedsReview++
		}
		if e.IsReadyToMerge() {
			stats.ReadyToMerge++
		}
		if e.HasChangesRequested() {
			stats.ChangesRequested++
		}
	}

	return stats
}

// SummarizeCollection evaluates prs and summarizes the result
func SummarizeCollection(prs []models.PullRequest, reviewsByPR map[int][]models.Review) models.DashboardStats {
	return Summarize(EvaluateAll(prs, reviewsByPR))
}
