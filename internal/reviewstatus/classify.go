package reviewstatus

import (
	"fmt"
	"time"

	"github.com/alimgiray/reviewboard/internal/models"
)

// ClassifyStatus maps a pull request's lifecycle and reviewer sets to one
// classification. approvals is normally len(sets.Approved); it differs only
// when the backend supplied an authoritative approval count.
//
// Rules are evaluated in order and the first match wins:
//
//  1. merged or closed             -> "Merged" (success)
//  2. nothing pending, approvals>0 -> "Ready to merge" (success)
//  3. no approvals, nobody to ask,
//     nobody requested changes     -> "No reviewers assigned" (primary)
//  4. no approvals                 -> "Needs review" (danger)
//  5. changes requested            -> "Changes requested" (warning)
//  6. otherwise                    -> "{approvals}/{required} approvals" (primary)
//
// Closed-without-merge is reported as "Merged" as well.
func ClassifyStatus(prNumber int, status models.PRStatus, mergedAt *time.Time, approvals int, sets ReviewerSets) (models.StatusClassification, error) {
	if !status.IsValid() {
		return models.UnknownClassification(), &DomainError{PRNumber: prNumber, Field: "status", Value: string(status)}
	}
	if approvals < 0 {
		return models.UnknownClassification(), &DomainError{PRNumber: prNumber, Field: "current_approvals_count", Value: fmt.Sprint(approvals)}
	}

	totalRequired := approvals + len(sets.Pending)
	result := models.StatusClassification{
		Approvals:     approvals,
		TotalRequired: totalRequired,
		ProgressRatio: progressRatio(approvals, totalRequired),
	}

	switch {
	case status.IsTerminal() || mergedAt != nil:
		result.Label, result.Severity = models.LabelMerged, models.SeveritySuccess
	case len(sets.Pending) == 0 && approvals > 0:
		result.Label, result.Severity = models.LabelReadyToMerge, models.SeveritySuccess
	case approvals == 0 && totalRequired == 0 && len(sets.ChangesRequested) == 0:
		result.Label, result.Severity = models.LabelNoReviewersAssigned, models.SeverityPrimary
	case approvals == 0:
		result.Label, result.Severity = models.LabelNeedsReview, models.SeverityDanger
	case len(sets.ChangesRequested) > 0:
		result.Label, result.Severity = models.LabelChangesRequested, models.SeverityWarning
	default:
		result.Label = fmt.Sprintf("%d/%d approvals", approvals, totalRequired)
		result.Severity = models.SeverityPrimary
	}

	return result, nil
}

func progressRatio(approvals, totalRequired int) float64 {
	if totalRequired <= 0 {
		return 0
	}
	ratio := float64(approvals) / float64(totalRequired)
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// Evaluation is a pull request together with everything derived from it
type Evaluation struct {
	PR             models.PullRequest          `json:"pull_request"`
	Classification models.StatusClassification `json:"classification"`
	Sets           ReviewerSets                `json:"reviewers"`
	Skipped        []*ValidationError          `json:"-"`
	Err            error                       `json:"-"`
}

// NeedsReview reports whether nobody has approved yet
func (e *Evaluation) NeedsReview() bool {
	return e.Err == nil && e.Classification.Approvals == 0
}

// HasChangesRequested reports whether any reviewer's latest verdict requests changes
func (e *Evaluation) HasChangesRequested() bool {
	return len(e.Sets.ChangesRequested) > 0
}

// IsReadyToMerge reports whether the classification is "Ready to merge"
func (e *Evaluation) IsReadyToMerge() bool {
	return e.Classification.Label == models.LabelReadyToMerge
}

// Evaluate runs the whole pipeline for one pull request. It never fails: a
// DomainError is kept on the evaluation and the classification becomes
// "Unknown" so callers can still render the pull request.
func Evaluate(pr models.PullRequest, reviews []models.Review) Evaluation {
	normalized, skipped := Normalize(reviews)
	sets := BuildSets(normalized, pr.RequestedReviewers)

	approvals := len(sets.Approved)
	if pr.CurrentApprovalsCount != nil {
		approvals = *pr.CurrentApprovalsCount
	}

	classification, err := ClassifyStatus(pr.GithubPRNumber, pr.Status, pr.MergedAt, approvals, sets)
	return Evaluation{
		PR:             pr,
		Classification: classification,
		Sets:           sets,
		Skipped:        skipped,
		Err:            err,
	}
}

// Classify returns the classification of one pull request, or the
// DomainError that prevented it.
func Classify(pr models.PullRequest, reviews []models.Review) (models.StatusClassification, error) {
	eval := Evaluate(pr, reviews)
	return eval.Classification, eval.Err
}

// EvaluateAll evaluates every pull request in order. reviewsByPR is keyed by
// GitHub PR number; a missing entry means the reviews are not known yet and
// is treated as an empty review list.
func EvaluateAll(prs []models.PullRequest, reviewsByPR map[int][]models.Review) []Evaluation {
	evals := make([]Evaluation, 0, len(prs))
	for _, pr := range prs {
		evals = append(evals, Evaluate(pr, reviewsByPR[pr.GithubPRNumber]))
	}
	return evals
}
