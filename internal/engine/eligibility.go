package engine

import "github.com/scottlepp/gen/internal/core/domain"

// Eligibility predicates. Pure functions over candidate rows whose facts
// were fetched from the store at selection time.

// eligiblePostActor: the actor must carry a valid generation tag and must
// not already have a post within the current UTC day.
func eligiblePostActor(a domain.ActorCandidate) bool {
	return domain.IsGeneratedUser(a.UserID) && !a.HasPostedToday
}

// eligibleCommentActor: generated, and no comment yet within the current
// UTC day.
func eligibleCommentActor(a domain.ActorCandidate) bool {
	return domain.IsGeneratedUser(a.UserID) && !a.HasCommentedToday
}

// eligibleLikeActor: any generated profile may like.
func eligibleLikeActor(a domain.ActorCandidate) bool {
	return domain.IsGeneratedUser(a.UserID)
}

// eligibleCommentTarget: no commenting on your own post.
func eligibleCommentTarget(actorID string, p domain.PostCandidate) bool {
	return p.UserID != actorID
}

// eligibleLikeTarget: no self-likes and no duplicate like edges.
func eligibleLikeTarget(actorID string, p domain.PostCandidate) bool {
	return p.UserID != actorID && !p.AlreadyLiked
}

// eligibleReplyTarget: the comment must come from someone other than the
// post owner, be the most recent comment on its post within the window,
// not already have an owner reply after it, and come from a human-authored
// account (generated actors never reply to each other).
func eligibleReplyTarget(c domain.CommentCandidate) bool {
	if c.UserID == c.PostUserID {
		return false
	}
	if !c.IsLatestOnPost {
		return false
	}
	if c.PostOwnerRepliedAfter {
		return false
	}
	return !domain.IsGeneratedUser(c.UserID)
}

// eligibleFollowTarget: not the actor itself, no existing edge, and at
// least one shared interest. The shared-interest count also ranks the
// candidate but never disqualifies it beyond the >=1 floor.
func eligibleFollowTarget(actorID string, f domain.FollowCandidate) bool {
	return f.UserID != actorID && !f.AlreadyFollowed && f.SharedInterests >= 1
}
