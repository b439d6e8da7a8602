package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/scottlepp/gen/internal/core/domain"
	"github.com/scottlepp/gen/internal/core/ports"
)

// fakeStore is an in-memory ports.Store. Facts (AlreadyLiked, follow edges)
// are recomputed from current state on every query, mirroring how the real
// gateway evaluates existence checks at selection time.
type fakeStore struct {
	actors    []domain.ActorCandidate
	posts     []domain.PostCandidate
	comments  []domain.CommentCandidate
	similar   map[string][]domain.FollowCandidate // keyed by actor user id
	interests map[int64][]int64                   // profile id -> interest ids
	names     []string
	exercises []string

	likes       map[string]bool // "postID/userID"
	follows     map[string]bool // "follower/following"
	postedToday map[string]bool

	committedPosts    []domain.Post
	committedComments []domain.Comment
	committedLikes    []domain.Like
	committedFollows  []domain.Follow
	committedProfiles []domain.Profile

	failCreateProfile bool
}

var _ ports.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		similar:     make(map[string][]domain.FollowCandidate),
		interests:   make(map[int64][]int64),
		likes:       make(map[string]bool),
		follows:     make(map[string]bool),
		postedToday: make(map[string]bool),
	}
}

func (s *fakeStore) GeneratedProfiles(ctx context.Context) ([]domain.ActorCandidate, error) {
	out := make([]domain.ActorCandidate, len(s.actors))
	copy(out, s.actors)
	for i := range out {
		if s.postedToday[out[i].UserID] {
			out[i].HasPostedToday = true
		}
	}
	return out, nil
}

func (s *fakeStore) RecentPosts(ctx context.Context, actorID string, window time.Duration) ([]domain.PostCandidate, error) {
	out := make([]domain.PostCandidate, len(s.posts))
	copy(out, s.posts)
	for i := range out {
		out[i].AlreadyLiked = s.likes[likeKey(out[i].ID, actorID)]
	}
	return out, nil
}

func (s *fakeStore) RecentComments(ctx context.Context, window time.Duration) ([]domain.CommentCandidate, error) {
	out := make([]domain.CommentCandidate, len(s.comments))
	copy(out, s.comments)
	return out, nil
}

func (s *fakeStore) SimilarProfiles(ctx context.Context, profileID int64, actorID string, interestIDs []int64) ([]domain.FollowCandidate, error) {
	cands := s.similar[actorID]
	out := make([]domain.FollowCandidate, len(cands))
	copy(out, cands)
	for i := range out {
		out[i].AlreadyFollowed = s.follows[followKey(actorID, out[i].UserID)]
	}
	return out, nil
}

func (s *fakeStore) ProfileInterests(ctx context.Context, profileID int64) ([]int64, error) {
	return s.interests[profileID], nil
}

func (s *fakeStore) Interests(ctx context.Context) ([]string, error) {
	return s.names, nil
}

func (s *fakeStore) Exercises(ctx context.Context) ([]string, error) {
	return s.exercises, nil
}

func (s *fakeStore) CreatePost(ctx context.Context, post domain.Post) (int64, error) {
	if s.postedToday[post.UserID] {
		return 0, domain.ErrDailyPostLimit
	}
	s.postedToday[post.UserID] = true
	post.ID = int64(len(s.committedPosts) + 1)
	s.committedPosts = append(s.committedPosts, post)
	return post.ID, nil
}

func (s *fakeStore) CreateComment(ctx context.Context, comment domain.Comment) (int64, error) {
	comment.ID = int64(len(s.committedComments) + 1)
	s.committedComments = append(s.committedComments, comment)
	return comment.ID, nil
}

func (s *fakeStore) CreateLike(ctx context.Context, like domain.Like) error {
	key := likeKey(like.PostID, like.UserID)
	if s.likes[key] {
		return &domain.PersistenceError{Op: "insert like", Err: fmt.Errorf("duplicate like")}
	}
	s.likes[key] = true
	s.committedLikes = append(s.committedLikes, like)
	return nil
}

func (s *fakeStore) CreateFollow(ctx context.Context, follow domain.Follow) error {
	key := followKey(follow.FollowerID, follow.FollowingID)
	if s.follows[key] {
		return nil // conflict is a no-op
	}
	s.follows[key] = true
	s.committedFollows = append(s.committedFollows, follow)
	return nil
}

func (s *fakeStore) CreateProfile(ctx context.Context, profile domain.Profile) (int64, error) {
	if s.failCreateProfile {
		return 0, &domain.PersistenceError{Op: "insert profile", Err: fmt.Errorf("boom")}
	}
	s.committedProfiles = append(s.committedProfiles, profile)
	return int64(len(s.committedProfiles)), nil
}

func (s *fakeStore) commitCount() int {
	return len(s.committedPosts) + len(s.committedComments) +
		len(s.committedLikes) + len(s.committedFollows) + len(s.committedProfiles)
}

func likeKey(postID int64, userID string) string {
	return fmt.Sprintf("%d/%s", postID, userID)
}

func followKey(follower, following string) string {
	return follower + "/" + following
}

// fakeBrain serves scripted responses and counts calls.
type fakeBrain struct {
	textResponses []string
	textCalls     int

	images     []*domain.GeneratedImage
	imageErr   error
	imageCalls int

	analyses     []string
	analysisErr  error
	analyzeCalls int
}

var _ ports.Brain = (*fakeBrain)(nil)

func (b *fakeBrain) GenerateText(ctx context.Context, prompt string) (string, error) {
	if b.textCalls >= len(b.textResponses) {
		return "", fmt.Errorf("unexpected text call %d", b.textCalls+1)
	}
	resp := b.textResponses[b.textCalls]
	b.textCalls++
	return resp, nil
}

func (b *fakeBrain) GenerateImage(ctx context.Context, prompt string) (*domain.GeneratedImage, error) {
	b.imageCalls++
	if b.imageErr != nil {
		return nil, b.imageErr
	}
	if len(b.images) == 0 {
		return &domain.GeneratedImage{Data: []byte("png")}, nil
	}
	img := b.images[(b.imageCalls-1)%len(b.images)]
	return img, nil
}

func (b *fakeBrain) AnalyzeImage(ctx context.Context, image []byte, prompt string) (string, error) {
	b.analyzeCalls++
	if b.analysisErr != nil {
		return "", b.analysisErr
	}
	if len(b.analyses) == 0 {
		return "", fmt.Errorf("no scripted analysis")
	}
	return b.analyses[(b.analyzeCalls-1)%len(b.analyses)], nil
}

// fakeBlob records uploads.
type fakeBlob struct {
	uploads []string
}

var _ ports.BlobStore = (*fakeBlob)(nil)

func (b *fakeBlob) Upload(ctx context.Context, name string, data []byte, opts ports.UploadOptions) (string, error) {
	b.uploads = append(b.uploads, name)
	return "https://blob.local/fitness-app/" + name, nil
}

func (b *fakeBlob) Delete(ctx context.Context, name string) error { return nil }

func (b *fakeBlob) SignedURL(ctx context.Context, name string, expiry time.Duration) (string, error) {
	return "https://blob.local/signed/" + name, nil
}
