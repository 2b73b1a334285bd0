package models

// DashboardStats are the summary counters shown above the pull request list
type DashboardStats struct {
	Total            int              `json:"total"`
	ByStatus         map[PRStatus]int `json:"by_status"`
	NeedsReview      int              `json:"needs_review"`
	ReadyToMerge     int              `json:"ready_to_merge"`
	ChangesRequested int              `json:"changes_requested"`
}

// NewDashboardStats returns zeroed stats with every lifecycle bucket present
func NewDashboardStats() DashboardStats {
	byStatus := make(map[PRStatus]int, len(PRStatuses))
	for _, s := range PRStatuses {
		byStatus[s] = 0
	}
	return DashboardStats{ByStatus: byStatus}
}
