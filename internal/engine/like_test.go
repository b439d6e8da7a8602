package engine

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scottlepp/gen/internal/core/domain"
)

func TestRunLikeCommitsOneEdge(t *testing.T) {
	gofakeit.Seed(11)
	store := newFakeStore()
	store.actors = []domain.ActorCandidate{
		generatedActor("fan_123456-m-g"),
		generatedActor(gofakeit.Username()), // untagged, never selected
	}
	store.posts = []domain.PostCandidate{
		{Post: domain.Post{ID: 1, Title: gofakeit.Sentence(4), UserID: "fan_123456-m-g"}},
		{Post: domain.Post{ID: 2, Title: gofakeit.Sentence(4), UserID: "owner_654321-f-g"}},
	}

	e := newTestEngine(store, &fakeBrain{}, &fakeBlob{})
	require.NoError(t, e.RunLike(context.Background()))

	require.Len(t, store.committedLikes, 1)
	like := store.committedLikes[0]
	assert.Equal(t, int64(2), like.PostID, "own post is never liked")
	assert.Equal(t, "fan_123456-m-g", like.UserID)
}

func TestRunLikeNeverDuplicatesEdge(t *testing.T) {
	store := newFakeStore()
	store.actors = []domain.ActorCandidate{generatedActor("fan_123456-m-g")}
	store.posts = []domain.PostCandidate{
		{Post: domain.Post{ID: 7, UserID: "owner_654321-f-g"}},
	}

	e := newTestEngine(store, &fakeBrain{}, &fakeBlob{})
	require.NoError(t, e.RunLike(context.Background()))

	// The edge just written removes the pair from eligibility; a second run
	// finds an empty set instead of racing into a duplicate insert.
	err := e.RunLike(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoEligibleCandidate)
	assert.Len(t, store.committedLikes, 1)
}

func TestRunLikeEmptyUniverse(t *testing.T) {
	store := newFakeStore()
	store.actors = []domain.ActorCandidate{generatedActor("fan_123456-m-g")}

	e := newTestEngine(store, &fakeBrain{}, &fakeBlob{})
	err := e.RunLike(context.Background())

	assert.ErrorIs(t, err, domain.ErrNoEligibleCandidate)
	assert.Zero(t, store.commitCount(), "no rows written")
}

func TestRunLikeNoGeneratedActors(t *testing.T) {
	store := newFakeStore()
	store.actors = []domain.ActorCandidate{generatedActor("justahuman")}
	store.posts = []domain.PostCandidate{
		{Post: domain.Post{ID: 1, UserID: "owner_654321-f-g"}},
	}

	e := newTestEngine(store, &fakeBrain{}, &fakeBlob{})
	err := e.RunLike(context.Background())

	assert.ErrorIs(t, err, domain.ErrNoEligibleCandidate)
	assert.Zero(t, store.commitCount())
}
