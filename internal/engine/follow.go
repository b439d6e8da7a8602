package engine

import (
	"context"
	"fmt"

	"github.com/scottlepp/gen/internal/core/domain"
)

// RunFollow creates follow edges for a sample of generated actors. For each
// actor, candidates sharing at least one interest are ranked by descending
// shared-interest count (ties broken at random), capped, and committed
// idempotently.
func (e *Engine) RunFollow(ctx context.Context) error {
	actors, err := e.store.GeneratedProfiles(ctx)
	if err != nil {
		return fmt.Errorf("fetch actors: %w", err)
	}
	generated := filterCandidates(actors, func(a domain.ActorCandidate) bool {
		return domain.IsGeneratedUser(a.UserID)
	})
	if len(generated) == 0 {
		return domain.ErrNoEligibleCandidate
	}

	var created int
	for _, actor := range sampleUpTo(e.rng, generated, maxFollowActors) {
		n, err := e.followForActor(ctx, actor)
		if err != nil {
			return err
		}
		created += n
	}

	e.log.Info("follow run complete", "edges_created", created)
	if created > 0 {
		e.notifyCommitted(ctx, "New follows", fmt.Sprintf("%d follow edges created", created))
	}
	return nil
}

func (e *Engine) followForActor(ctx context.Context, actor domain.ActorCandidate) (int, error) {
	interestIDs, err := e.store.ProfileInterests(ctx, actor.ID)
	if err != nil {
		return 0, fmt.Errorf("fetch interests for %s: %w", actor.UserID, err)
	}
	if len(interestIDs) == 0 {
		e.log.Debug("actor has no interests, skipping", "user", actor.UserID)
		return 0, nil
	}

	cands, err := e.store.SimilarProfiles(ctx, actor.ID, actor.UserID, interestIDs)
	if err != nil {
		return 0, fmt.Errorf("fetch similar profiles for %s: %w", actor.UserID, err)
	}
	eligible := filterCandidates(cands, func(f domain.FollowCandidate) bool {
		return eligibleFollowTarget(actor.UserID, f)
	})
	ranked := rankFollowCandidates(e.rng, eligible, maxFollowCandidates)
	e.log.Debug("follow target candidates",
		"user", actor.UserID, "similar", len(cands), "eligible", len(eligible), "ranked", len(ranked))

	for _, cand := range ranked {
		follow := domain.Follow{FollowerID: actor.UserID, FollowingID: cand.UserID}
		if err := e.store.CreateFollow(ctx, follow); err != nil {
			return 0, err
		}
	}
	return len(ranked), nil
}
