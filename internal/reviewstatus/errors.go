package reviewstatus

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedTimestamp = errors.New("malformed submitted_at timestamp")
	ErrUnknownReviewState = errors.New("unknown review state")
	ErrMissingReviewer    = errors.New("missing reviewer username")
)

// ValidationError describes a review record that was excluded from
// normalization. The remaining records of the pull request are still used.
type ValidationError struct {
	ReviewID string
	Reviewer string
	Field    string
	Value    string
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("review %q by %q: invalid %s %q: %v", e.ReviewID, e.Reviewer, e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// DomainError reports a logically impossible pull request state. It is a
// data integrity bug upstream and is never coerced into a valid status.
type DomainError struct {
	PRNumber int
	Field    string
	Value    string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("pull request #%d: unrecognized %s %q", e.PRNumber, e.Field, e.Value)
}
