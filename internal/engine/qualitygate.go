package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/scottlepp/gen/internal/core/domain"
)

// maxGateAttempts is the synthesis budget for one quality-gated artifact.
const maxGateAttempts = 3

// minImageRating is the acceptance threshold on the Rating: X/10 scale.
const minImageRating = 8

type synthesizeFunc func(ctx context.Context) (*domain.GeneratedImage, error)

// validateFunc returns whether the artifact passed, plus any issues found.
// A non-nil error means the verdict itself could not be produced; the gate
// conservatively counts that as a failed attempt.
type validateFunc func(ctx context.Context, img *domain.GeneratedImage) (bool, []string, error)

// produceValidated runs the bounded synthesize/validate loop. Exactly k
// synthesis calls happen for a run that succeeds on attempt k, and exactly
// maxAttempts for a run that never succeeds, which then fails with
// QualityGateExhaustedError. No partial artifact is ever returned.
func (e *Engine) produceValidated(ctx context.Context, synthesize synthesizeFunc, validate validateFunc, maxAttempts int) (*domain.GeneratedImage, error) {
	var lastIssues []string

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		img, err := synthesize(ctx)
		if err != nil {
			e.log.Warn("synthesis failed", "attempt", attempt, "error", err)
			lastIssues = []string{err.Error()}
			continue
		}
		if img == nil || len(img.Data) == 0 {
			e.log.Warn("synthesis yielded no image", "attempt", attempt)
			lastIssues = []string{"no image data in response"}
			continue
		}

		ok, issues, err := validate(ctx, img)
		if err != nil {
			// Assume issues when the verdict is malformed.
			e.log.Warn("validation verdict unusable", "attempt", attempt, "error", err)
			lastIssues = []string{err.Error()}
			continue
		}
		if ok {
			return img, nil
		}
		e.log.Info("image rejected", "attempt", attempt, "issues", issues)
		lastIssues = issues
	}

	return nil, &domain.QualityGateExhaustedError{Attempts: maxAttempts, LastIssues: lastIssues}
}

// avatarVerdict is the structured verdict the avatar analysis prompt asks
// for. Pointer fields distinguish "absent" from zero values.
type avatarVerdict struct {
	HasIssues    *bool    `json:"hasIssues"`
	Issues       []string `json:"issues"`
	QualityScore *float64 `json:"qualityScore"`
}

// parseAvatarVerdict extracts the {hasIssues, issues, qualityScore} verdict
// out of a (possibly fenced) analysis response.
func parseAvatarVerdict(raw string) (hasIssues bool, issues []string, err error) {
	var verdict avatarVerdict
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &verdict); err != nil {
		return false, nil, fmt.Errorf("parse avatar verdict: %w", err)
	}
	if verdict.HasIssues == nil {
		return false, nil, fmt.Errorf("avatar verdict missing hasIssues field")
	}
	return *verdict.HasIssues, verdict.Issues, nil
}

var ratingPattern = regexp.MustCompile(`Rating: (\d+)/10`)

// parseImageRating extracts the leading "Rating: X/10" line out of a
// free-text analysis response.
func parseImageRating(raw string) (int, error) {
	m := ratingPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, fmt.Errorf("no rating found in analysis")
	}
	var rating int
	if _, err := fmt.Sscanf(m[1], "%d", &rating); err != nil {
		return 0, fmt.Errorf("invalid rating %q: %w", m[1], err)
	}
	return rating, nil
}
