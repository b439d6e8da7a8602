package engine

import (
	"context"
	"fmt"

	"github.com/scottlepp/gen/internal/core/domain"
)

// RunLike commits one like: pick a generated actor, pick a recent post they
// neither own nor already liked, insert the edge.
func (e *Engine) RunLike(ctx context.Context) error {
	actors, err := e.store.GeneratedProfiles(ctx)
	if err != nil {
		return fmt.Errorf("fetch actors: %w", err)
	}
	actor, err := pickOne(e.rng, filterCandidates(actors, eligibleLikeActor))
	if err != nil {
		return err
	}

	posts, err := e.store.RecentPosts(ctx, actor.UserID, EligibilityWindow)
	if err != nil {
		return fmt.Errorf("fetch recent posts: %w", err)
	}
	eligible := filterCandidates(posts, func(p domain.PostCandidate) bool {
		return eligibleLikeTarget(actor.UserID, p)
	})
	e.logLikeSkips(actor.UserID, posts, eligible)

	post, err := pickOne(e.rng, eligible)
	if err != nil {
		return err
	}

	if err := e.store.CreateLike(ctx, domain.Like{PostID: post.ID, UserID: actor.UserID}); err != nil {
		return err
	}

	e.log.Info("like committed", "post_id", post.ID, "user", actor.UserID)
	e.notifyCommitted(ctx, "New like",
		fmt.Sprintf("%s liked %q", actor.DisplayName, post.Title))
	return nil
}

func (e *Engine) logLikeSkips(actorID string, all, eligible []domain.PostCandidate) {
	var own, alreadyLiked int
	for _, p := range all {
		switch {
		case p.UserID == actorID:
			own++
		case p.AlreadyLiked:
			alreadyLiked++
		}
	}
	e.log.Debug("like target candidates",
		"recent", len(all), "eligible", len(eligible),
		"skipped_own", own, "skipped_already_liked", alreadyLiked)
}
