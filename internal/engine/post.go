package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/scottlepp/gen/internal/core/domain"
	"github.com/scottlepp/gen/internal/core/ports"
)

// RunPost generates and commits one exercise post: select an eligible
// actor, synthesize the description and image (image through the quality
// gate), upload the accepted image, then commit with the daily-cap guard.
func (e *Engine) RunPost(ctx context.Context) error {
	actors, err := e.store.GeneratedProfiles(ctx)
	if err != nil {
		return fmt.Errorf("fetch actors: %w", err)
	}
	eligible := filterCandidates(actors, eligiblePostActor)
	e.log.Debug("post actor candidates",
		"total", len(actors), "eligible", len(eligible))

	actor, err := pickOne(e.rng, eligible)
	if err != nil {
		return err
	}

	exercises, err := e.store.Exercises(ctx)
	if err != nil {
		return fmt.Errorf("fetch exercises: %w", err)
	}
	exercise, err := pickOne(e.rng, exercises)
	if err != nil {
		return fmt.Errorf("no exercises available: %w", err)
	}

	content, err := e.brain.GenerateText(ctx, exerciseContentPrompt(exercise))
	if err != nil {
		return fmt.Errorf("generate post content: %w", err)
	}

	img, err := e.produceValidated(ctx,
		func(ctx context.Context) (*domain.GeneratedImage, error) {
			return e.brain.GenerateImage(ctx, exerciseImagePrompt(exercise))
		},
		func(ctx context.Context, img *domain.GeneratedImage) (bool, []string, error) {
			analysis, err := e.brain.AnalyzeImage(ctx, img.Data, exerciseAnalysisPrompt(exercise))
			if err != nil {
				return false, nil, err
			}
			rating, err := parseImageRating(analysis)
			if err != nil {
				return false, nil, err
			}
			if rating < minImageRating {
				return false, []string{fmt.Sprintf("rating %d/10 below threshold", rating)}, nil
			}
			return true, nil, nil
		},
		maxGateAttempts)
	if err != nil {
		return err
	}

	objectName := fmt.Sprintf("exercises/%s-%s.png", slugify(exercise, "-"), uuid.NewString())
	imageURL, err := e.blob.Upload(ctx, objectName, img.Data, ports.UploadOptions{
		ContentType: "image/png",
		Public:      true,
	})
	if err != nil {
		return fmt.Errorf("upload post image: %w", err)
	}

	post := domain.Post{
		Title:    fmt.Sprintf("How to Perform %s Correctly", exercise),
		Content:  content,
		ImageURL: imageURL,
		Author:   actor.DisplayName,
		UserID:   actor.UserID,
	}
	id, err := e.store.CreatePost(ctx, post)
	if err != nil {
		return err
	}

	e.log.Info("post committed", "post_id", id, "exercise", exercise, "author", actor.UserID)
	e.notifyCommitted(ctx, "New post",
		fmt.Sprintf("%s posted %q", actor.DisplayName, post.Title))
	return nil
}
