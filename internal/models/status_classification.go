package models

// Severity drives the badge color of a classification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
	SeverityPrimary Severity = "primary"
)

// Canonical classification labels. The approval-progress label is formatted
// as "{approved}/{required} approvals" and has no constant.
const (
	LabelMerged              = "Merged"
	LabelReadyToMerge        = "Ready to merge"
	LabelNoReviewersAssigned = "No reviewers assigned"
	LabelNeedsReview         = "Needs review"
	LabelChangesRequested    = "Changes requested"
	LabelUnknown             = "Unknown"
)

// StatusClassification is derived from a pull request and its reviews on
// every read. It is never stored.
type StatusClassification struct {
	Label         string   `json:"label"`
	Severity      Severity `json:"severity"`
	Approvals     int      `json:"approvals"`
	TotalRequired int      `json:"total_required"`
	ProgressRatio float64  `json:"progress_ratio"`
}

// UnknownClassification is substituted for a pull request whose data cannot be classified
func UnknownClassification() StatusClassification {
	return StatusClassification{
		Label:    LabelUnknown,
		Severity: SeverityPrimary,
	}
}
