package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/scottlepp/gen/internal/core/domain"
	"github.com/scottlepp/gen/internal/core/ports"
)

const profileInterestCount = 3

// RunProfile creates one generated profile: random interests, gender and
// fitness level, a synthesized display name and bio, and an avatar that
// passed the quality gate. Profile and interest rows commit in a single
// transaction.
func (e *Engine) RunProfile(ctx context.Context) error {
	allInterests, err := e.store.Interests(ctx)
	if err != nil {
		return fmt.Errorf("fetch interests: %w", err)
	}
	interests := sampleUpTo(e.rng, allInterests, profileInterestCount)
	if len(interests) == 0 {
		interests = []string{"fitness", "wellness", "health"}
	}

	gender := domain.GenderMale
	if e.rng.IntN(2) == 1 {
		gender = domain.GenderFemale
	}
	levels := []domain.FitnessLevel{domain.FitnessBeginner, domain.FitnessIntermediate, domain.FitnessAdvanced}
	level := levels[e.rng.IntN(len(levels))]

	raw, err := e.brain.GenerateText(ctx, profilePrompt(gender, level, interests))
	if err != nil {
		return fmt.Errorf("generate profile content: %w", err)
	}
	displayName, bio, err := parseProfilePayload(raw)
	if err != nil {
		return err
	}

	avatar, err := e.produceValidated(ctx,
		func(ctx context.Context) (*domain.GeneratedImage, error) {
			return e.brain.GenerateImage(ctx, avatarPrompt(gender, level))
		},
		func(ctx context.Context, img *domain.GeneratedImage) (bool, []string, error) {
			analysis, err := e.brain.AnalyzeImage(ctx, img.Data, avatarAnalysisPrompt)
			if err != nil {
				return false, nil, err
			}
			hasIssues, issues, err := parseAvatarVerdict(analysis)
			if err != nil {
				return false, nil, err
			}
			return !hasIssues, issues, nil
		},
		maxGateAttempts)
	if err != nil {
		return err
	}

	slug := slugify(displayName, "")
	objectName := fmt.Sprintf("avatars/%s-g-%s.png", slug, uuid.NewString())
	avatarURL, err := e.blob.Upload(ctx, objectName, avatar.Data, ports.UploadOptions{
		ContentType: "image/png",
		Public:      true,
	})
	if err != nil {
		return fmt.Errorf("upload avatar: %w", err)
	}

	stamp := e.now().UnixMilli() % 1000000
	profile := domain.Profile{
		UserID:       fmt.Sprintf("%s_%06d%s", slug, stamp, domain.GenerationSuffix(gender)),
		DisplayName:  displayName,
		Bio:          bio,
		AvatarURL:    avatarURL,
		FitnessLevel: level,
		Interests:    interests,
	}
	id, err := e.store.CreateProfile(ctx, profile)
	if err != nil {
		return err
	}

	e.log.Info("profile committed", "profile_id", id, "user", profile.UserID, "gender", gender, "level", level)
	e.notifyCommitted(ctx, "New profile",
		fmt.Sprintf("%s joined (%s, %s)", displayName, gender, level))
	return nil
}
