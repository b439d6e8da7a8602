package domain

import "time"

// Gender of a generated profile.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// FitnessLevel mirrors the profiles.fitness_level column.
type FitnessLevel string

const (
	FitnessBeginner     FitnessLevel = "beginner"
	FitnessIntermediate FitnessLevel = "intermediate"
	FitnessAdvanced     FitnessLevel = "advanced"
)

// Profile is an actor capable of posting, commenting, liking and following.
type Profile struct {
	ID           int64
	UserID       string
	DisplayName  string
	Bio          string
	AvatarURL    string
	FitnessLevel FitnessLevel
	Interests    []string
}

// Post is a committed exercise post. Immutable once created.
type Post struct {
	ID        int64
	Title     string
	Content   string
	ImageURL  string
	Author    string
	UserID    string
	CreatedAt time.Time
}

// Comment is a committed comment (or reply) on a post.
type Comment struct {
	ID        int64
	PostID    int64
	Content   string
	Author    string
	UserID    string
	CreatedAt time.Time
}

// Like is a like edge between an actor and a post.
type Like struct {
	PostID int64
	UserID string
}

// Follow is a follow edge between two actors.
type Follow struct {
	FollowerID  string
	FollowingID string
}

// GeneratedImage is the artifact produced by an image synthesis call:
// raw image bytes plus any descriptive text returned alongside them.
type GeneratedImage struct {
	Text string
	Data []byte
}

// ActorCandidate is a profile row augmented with the daily-activity facts
// the eligibility predicates need. Facts are computed by the store at
// selection time, never cached.
type ActorCandidate struct {
	Profile
	HasPostedToday    bool
	HasCommentedToday bool
}

// PostCandidate is a recent post augmented with per-actor facts.
// AlreadyLiked is relative to the actor the candidate set was fetched for.
type PostCandidate struct {
	Post
	AlreadyLiked bool
}

// CommentCandidate is a recent comment joined with its post, plus the
// thread-state facts the reply predicates need.
type CommentCandidate struct {
	Comment
	PostTitle   string
	PostContent string
	PostAuthor  string
	PostUserID  string
	// IsLatestOnPost is true when no later comment exists on the same post
	// within the eligibility window.
	IsLatestOnPost bool
	// PostOwnerRepliedAfter is true when the post owner already commented
	// after this comment on the same post.
	PostOwnerRepliedAfter bool
}

// FollowCandidate is a profile sharing at least one interest with the
// following actor. AlreadyFollowed is relative to that actor.
type FollowCandidate struct {
	Profile
	SharedInterests int
	AlreadyFollowed bool
}
