package reviewstatus

import (
	"testing"

	"github.com/alimgiray/reviewboard/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildSets(t *testing.T) {
	testCases := []struct {
		name             string
		reviews          []models.Review
		requested        []string
		approved         []string
		changesRequested []string
		pending          []string
	}{
		{
			name:             "nobody responded",
			requested:        []string{"x", "y"},
			approved:         []string{},
			changesRequested: []string{},
			pending:          []string{"x", "y"},
		},
		{
			name: "comment removes reviewer from pending",
			reviews: []models.Review{
				review(1, "x", models.ReviewStateCommented, 1),
			},
			requested:        []string{"x", "y"},
			approved:         []string{},
			changesRequested: []string{},
			pending:          []string{"y"},
		},
		{
			name: "unsolicited reviewer counts but is never pending",
			reviews: []models.Review{
				review(1, "z", models.ReviewStateApproved, 1),
				review(1, "w", models.ReviewStateChangesRequested, 2),
			},
			requested:        []string{"x"},
			approved:         []string{"z"},
			changesRequested: []string{"w"},
			pending:          []string{"x"},
		},
		{
			name: "latest verdict decides the set",
			reviews: []models.Review{
				review(1, "x", models.ReviewStateChangesRequested, 1),
				review(1, "x", models.ReviewStateApproved, 2),
			},
			requested:        []string{"x"},
			approved:         []string{"x"},
			changesRequested: []string{},
			pending:          []string{},
		},
		{
			name:             "duplicate and blank roster entries",
			requested:        []string{"y", "", "x", "y"},
			approved:         []string{},
			changesRequested: []string{},
			pending:          []string{"y", "x"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			normalized, _ := Normalize(tc.reviews)
			sets := BuildSets(normalized, tc.requested)

			assert.Equal(t, tc.approved, sets.Approved)
			assert.Equal(t, tc.changesRequested, sets.ChangesRequested)
			assert.Equal(t, tc.pending, sets.Pending)
			assert.Equal(t, len(tc.approved)+len(tc.pending), sets.TotalRequired())
		})
	}
}
