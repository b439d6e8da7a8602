package ports

import (
	"context"
	"time"

	"github.com/scottlepp/gen/internal/core/domain"
)

// Store is the gateway to the shared relational store. Candidate queries
// return rows augmented with the facts the eligibility predicates need,
// computed against the current state of the store at call time.
type Store interface {
	// GeneratedProfiles returns every profile whose user_id carries a
	// generation tag, with per-day activity facts.
	GeneratedProfiles(ctx context.Context) ([]domain.ActorCandidate, error)
	// RecentPosts returns posts created within the window. AlreadyLiked is
	// computed relative to actorID.
	RecentPosts(ctx context.Context, actorID string, window time.Duration) ([]domain.PostCandidate, error)
	// RecentComments returns comments created within the window joined with
	// their posts and thread-state facts.
	RecentComments(ctx context.Context, window time.Duration) ([]domain.CommentCandidate, error)
	// SimilarProfiles returns profiles sharing at least one of the given
	// interests with the actor, with shared counts and follow-edge facts.
	SimilarProfiles(ctx context.Context, profileID int64, actorID string, interestIDs []int64) ([]domain.FollowCandidate, error)
	ProfileInterests(ctx context.Context, profileID int64) ([]int64, error)
	Interests(ctx context.Context) ([]string, error)
	Exercises(ctx context.Context) ([]string, error)

	// CreatePost inserts a post guarded by an atomic "no post today for this
	// author" condition; a violated condition yields domain.ErrDailyPostLimit.
	CreatePost(ctx context.Context, post domain.Post) (int64, error)
	CreateComment(ctx context.Context, comment domain.Comment) (int64, error)
	// CreateLike inserts a like edge; a duplicate is a hard error.
	CreateLike(ctx context.Context, like domain.Like) error
	// CreateFollow inserts a follow edge; a duplicate is a no-op.
	CreateFollow(ctx context.Context, follow domain.Follow) error
	// CreateProfile inserts a profile and its interest associations in a
	// single transaction.
	CreateProfile(ctx context.Context, profile domain.Profile) (int64, error)
}

// Brain is the external content-synthesis capability.
type Brain interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (*domain.GeneratedImage, error)
	AnalyzeImage(ctx context.Context, image []byte, prompt string) (string, error)
}

// UploadOptions control blob uploads.
type UploadOptions struct {
	ContentType string
	Public      bool
}

// BlobStore is the external object-storage capability.
type BlobStore interface {
	Upload(ctx context.Context, name string, data []byte, opts UploadOptions) (string, error)
	Delete(ctx context.Context, name string) error
	SignedURL(ctx context.Context, name string, expiry time.Duration) (string, error)
}

// Notifier delivers a best-effort summary of a committed action to the
// operator. Errors are logged by the caller, never propagated.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}
