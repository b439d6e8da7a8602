package engine

import (
	"context"
	"fmt"

	"github.com/scottlepp/gen/internal/core/domain"
)

// RunComment generates and commits one comment: pick a generated actor who
// hasn't commented today, pick a recent post they don't own, synthesize a
// styled comment, commit.
func (e *Engine) RunComment(ctx context.Context) error {
	actors, err := e.store.GeneratedProfiles(ctx)
	if err != nil {
		return fmt.Errorf("fetch actors: %w", err)
	}
	actor, err := pickOne(e.rng, filterCandidates(actors, eligibleCommentActor))
	if err != nil {
		return err
	}

	posts, err := e.store.RecentPosts(ctx, actor.UserID, EligibilityWindow)
	if err != nil {
		return fmt.Errorf("fetch recent posts: %w", err)
	}
	eligible := filterCandidates(posts, func(p domain.PostCandidate) bool {
		return eligibleCommentTarget(actor.UserID, p)
	})
	e.log.Debug("comment target candidates",
		"recent", len(posts), "eligible", len(eligible),
		"skipped_own", len(posts)-len(eligible))

	post, err := pickOne(e.rng, eligible)
	if err != nil {
		return err
	}

	style, err := pickOne(e.rng, commentStyles)
	if err != nil {
		return err
	}
	example, err := pickOne(e.rng, style.Examples)
	if err != nil {
		return err
	}

	raw, err := e.brain.GenerateText(ctx, commentPrompt(post, style, example))
	if err != nil {
		return fmt.Errorf("generate comment: %w", err)
	}
	content, err := parseContentPayload(raw)
	if err != nil {
		return err
	}

	comment := domain.Comment{
		PostID:  post.ID,
		Content: content,
		Author:  actor.DisplayName,
		UserID:  actor.UserID,
	}
	id, err := e.store.CreateComment(ctx, comment)
	if err != nil {
		return err
	}

	e.log.Info("comment committed", "comment_id", id, "post_id", post.ID, "author", actor.UserID)
	e.notifyCommitted(ctx, "New comment",
		fmt.Sprintf("%s commented on %q", actor.DisplayName, post.Title))
	return nil
}
