package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scottlepp/gen/internal/core/domain"
)

func postStore() *fakeStore {
	store := newFakeStore()
	store.actors = []domain.ActorCandidate{generatedActor("lifter_123456-m-g")}
	store.exercises = []string{"Squats"}
	return store
}

func TestRunPostQualityGateSuccessPath(t *testing.T) {
	store := postStore()
	brain := &fakeBrain{
		textResponses: []string{"Squats build leg strength. Keep your back straight."},
		analyses: []string{
			"Rating: 5/10\nForm is unclear.",
			"Rating: 6/10\nLighting is poor.",
			"Rating: 9/10\nExcellent representation.",
		},
	}
	blob := &fakeBlob{}

	e := newTestEngine(store, brain, blob)
	require.NoError(t, e.RunPost(context.Background()))

	assert.Equal(t, 3, brain.imageCalls, "one synthesis per attempt until accepted")
	require.Len(t, store.committedPosts, 1)
	post := store.committedPosts[0]
	assert.Equal(t, "How to Perform Squats Correctly", post.Title)
	assert.Equal(t, "lifter_123456-m-g", post.UserID)
	assert.Contains(t, post.ImageURL, "exercises/squats-")

	require.Len(t, blob.uploads, 1, "only the accepted artifact is persisted")
	assert.True(t, strings.HasPrefix(blob.uploads[0], "exercises/squats-"))
}

func TestRunPostQualityGateExhaustion(t *testing.T) {
	store := postStore()
	brain := &fakeBrain{
		textResponses: []string{"Squats build leg strength."},
		analyses:      []string{"Rating: 3/10\nWrong exercise entirely."},
	}
	blob := &fakeBlob{}

	e := newTestEngine(store, brain, blob)
	err := e.RunPost(context.Background())

	var exhausted *domain.QualityGateExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, maxGateAttempts, brain.imageCalls)
	assert.Zero(t, store.commitCount(), "zero commits on exhaustion")
	assert.Empty(t, blob.uploads, "rejected artifacts are never uploaded")
}

func TestRunPostDailyCapExcludesActor(t *testing.T) {
	store := postStore()
	store.postedToday["lifter_123456-m-g"] = true

	e := newTestEngine(store, &fakeBrain{}, &fakeBlob{})
	err := e.RunPost(context.Background())

	assert.ErrorIs(t, err, domain.ErrNoEligibleCandidate)
	assert.Zero(t, store.commitCount())
}

// staleActorStore serves actor facts that predate a concurrent commit, to
// exercise the conditional-insert guard.
type staleActorStore struct {
	*fakeStore
}

func (s *staleActorStore) GeneratedProfiles(ctx context.Context) ([]domain.ActorCandidate, error) {
	out := make([]domain.ActorCandidate, len(s.actors))
	copy(out, s.actors)
	return out, nil
}

func TestRunPostCommitGuardCatchesRace(t *testing.T) {
	store := postStore()
	// Another run committed a post between selection and commit.
	store.postedToday["lifter_123456-m-g"] = true

	brain := &fakeBrain{
		textResponses: []string{"Squats build leg strength."},
		analyses:      []string{"Rating: 9/10"},
	}
	e := newTestEngine(&staleActorStore{store}, brain, &fakeBlob{})
	err := e.RunPost(context.Background())

	assert.ErrorIs(t, err, domain.ErrDailyPostLimit)
	assert.Empty(t, store.committedPosts, "the guarded insert wrote nothing")
}

func TestRunPostNoExercises(t *testing.T) {
	store := postStore()
	store.exercises = nil

	e := newTestEngine(store, &fakeBrain{textResponses: []string{"unused"}}, &fakeBlob{})
	err := e.RunPost(context.Background())

	assert.Error(t, err)
	assert.Zero(t, store.commitCount())
}

func TestEligibilityWindowIsTwentyFourHours(t *testing.T) {
	assert.Equal(t, 24*time.Hour, EligibilityWindow)
}
