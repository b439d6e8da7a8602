package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoEligibleCandidate means the constrained candidate set was empty.
// A run ending with this error simply did nothing; it is not a defect.
var ErrNoEligibleCandidate = errors.New("no eligible candidate")

// ErrDailyPostLimit means the conditional insert found the actor already
// posted within the current UTC day. Like ErrNoEligibleCandidate this ends
// the run without a commit but is not a crash condition.
var ErrDailyPostLimit = errors.New("daily post limit reached")

// ContentFormatError means generated text failed to parse as the expected
// structured payload. Fatal to the run, nothing is committed.
type ContentFormatError struct {
	Raw string
	Err error
}

func (e *ContentFormatError) Error() string {
	return fmt.Sprintf("generated content did not match expected format: %v", e.Err)
}

func (e *ContentFormatError) Unwrap() error { return e.Err }

// QualityGateExhaustedError means no synthesized image passed validation
// within the attempt budget.
type QualityGateExhaustedError struct {
	Attempts   int
	LastIssues []string
}

func (e *QualityGateExhaustedError) Error() string {
	if len(e.LastIssues) == 0 {
		return fmt.Sprintf("no acceptable image after %d attempts", e.Attempts)
	}
	return fmt.Sprintf("no acceptable image after %d attempts (last issues: %s)",
		e.Attempts, strings.Join(e.LastIssues, "; "))
}

// PersistenceError wraps a failed store write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IdentityFormatError means a user id matched neither supported
// gender/generation encoding.
type IdentityFormatError struct {
	UserID string
}

func (e *IdentityFormatError) Error() string {
	return fmt.Sprintf("user id %q has no valid generation tag", e.UserID)
}
