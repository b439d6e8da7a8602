package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scottlepp/gen/internal/core/domain"
)

func generatedActor(userID string) domain.ActorCandidate {
	return domain.ActorCandidate{Profile: domain.Profile{UserID: userID}}
}

func TestEligiblePostActor(t *testing.T) {
	a := generatedActor("lifter_123456-m-g")
	assert.True(t, eligiblePostActor(a))

	a.HasPostedToday = true
	assert.False(t, eligiblePostActor(a), "daily cap")

	assert.False(t, eligiblePostActor(generatedActor("realhuman")), "untagged ids never act")
}

func TestEligibleCommentActor(t *testing.T) {
	a := generatedActor("lifter_123456-f-g")
	assert.True(t, eligibleCommentActor(a))

	a.HasCommentedToday = true
	assert.False(t, eligibleCommentActor(a))
}

func TestEligibleCommentTarget(t *testing.T) {
	post := domain.PostCandidate{Post: domain.Post{UserID: "owner-m-g"}}
	assert.True(t, eligibleCommentTarget("other-f-g", post))
	assert.False(t, eligibleCommentTarget("owner-m-g", post), "no self-comment")
}

func TestEligibleLikeTarget(t *testing.T) {
	post := domain.PostCandidate{Post: domain.Post{UserID: "owner-m-g"}}
	assert.True(t, eligibleLikeTarget("fan-f-g", post))
	assert.False(t, eligibleLikeTarget("owner-m-g", post), "no self-like")

	post.AlreadyLiked = true
	assert.False(t, eligibleLikeTarget("fan-f-g", post), "no duplicate edge")
}

func TestEligibleReplyTarget(t *testing.T) {
	base := domain.CommentCandidate{
		Comment:        domain.Comment{UserID: "human42"},
		PostUserID:     "owner-m-g",
		IsLatestOnPost: true,
	}
	assert.True(t, eligibleReplyTarget(base))

	self := base
	self.Comment.UserID = "owner-m-g"
	assert.False(t, eligibleReplyTarget(self), "self-comments are not reply targets")

	stale := base
	stale.IsLatestOnPost = false
	assert.False(t, eligibleReplyTarget(stale), "only the latest comment on a post")

	replied := base
	replied.PostOwnerRepliedAfter = true
	assert.False(t, eligibleReplyTarget(replied), "owner already replied")

	bot := base
	bot.Comment.UserID = "bot_123456-f-g"
	assert.False(t, eligibleReplyTarget(bot), "generated commenters are skipped")
}

func TestEligibleFollowTarget(t *testing.T) {
	cand := domain.FollowCandidate{
		Profile:         domain.Profile{UserID: "peer-f-g"},
		SharedInterests: 2,
	}
	assert.True(t, eligibleFollowTarget("actor-m-g", cand))
	assert.False(t, eligibleFollowTarget("peer-f-g", cand), "no self-follow")

	followed := cand
	followed.AlreadyFollowed = true
	assert.False(t, eligibleFollowTarget("actor-m-g", followed), "no duplicate edge")

	none := cand
	none.SharedInterests = 0
	assert.False(t, eligibleFollowTarget("actor-m-g", none))
}
