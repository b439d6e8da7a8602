package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scottlepp/gen/internal/core/domain"
	"github.com/scottlepp/gen/internal/core/ports"
)

// PostgresStore implements ports.Store against the shared fitness-app
// schema. Connections are acquired from the pool per query and released on
// every exit path.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

var _ ports.Store = (*PostgresStore)(nil)

func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return &PostgresStore{Pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.Pool.Close()
}

// generatedTagFilter matches both separator styles that exist in the data.
// The patterns are deliberately loose (underscore is a LIKE wildcard); the
// identity parser is authoritative and re-validates every row in Go.
const generatedTagFilter = `(p.user_id LIKE '%-m-g' OR p.user_id LIKE '%-f-g' OR p.user_id LIKE '%_m_g' OR p.user_id LIKE '%_f_g')`

func (s *PostgresStore) GeneratedProfiles(ctx context.Context) ([]domain.ActorCandidate, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT p.id, p.user_id, p.display_name, COALESCE(p.bio, ''),
		       COALESCE(p.custom_avatar_url, ''), COALESCE(p.fitness_level, 'beginner'),
		       EXISTS (
		           SELECT 1 FROM posts ps
		           WHERE ps.user_id = p.user_id
		           AND ps.created_at >= CURRENT_DATE
		           AND ps.created_at < CURRENT_DATE + INTERVAL '1 day'
		       ) AS has_posted_today,
		       EXISTS (
		           SELECT 1 FROM comments c
		           WHERE c.user_id = p.user_id
		           AND c.created_at >= CURRENT_DATE
		           AND c.created_at < CURRENT_DATE + INTERVAL '1 day'
		       ) AS has_commented_today
		FROM profiles p
		WHERE `+generatedTagFilter)
	if err != nil {
		return nil, fmt.Errorf("query generated profiles: %w", err)
	}
	defer rows.Close()

	var out []domain.ActorCandidate
	for rows.Next() {
		var a domain.ActorCandidate
		var level string
		if err := rows.Scan(&a.ID, &a.UserID, &a.DisplayName, &a.Bio, &a.AvatarURL,
			&level, &a.HasPostedToday, &a.HasCommentedToday); err != nil {
			return nil, fmt.Errorf("scan profile row: %w", err)
		}
		a.FitnessLevel = domain.FitnessLevel(level)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PostgresStore) RecentPosts(ctx context.Context, actorID string, window time.Duration) ([]domain.PostCandidate, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT p.id, p.title, p.content, COALESCE(p.image_url, ''), p.author, p.user_id, p.created_at,
		       EXISTS (
		           SELECT 1 FROM likes l
		           WHERE l.post_id = p.id AND l.user_id = $1
		       ) AS already_liked
		FROM posts p
		WHERE p.created_at >= NOW() - make_interval(secs => $2)`,
		actorID, window.Seconds())
	if err != nil {
		return nil, fmt.Errorf("query recent posts: %w", err)
	}
	defer rows.Close()

	var out []domain.PostCandidate
	for rows.Next() {
		var p domain.PostCandidate
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.ImageURL, &p.Author,
			&p.UserID, &p.CreatedAt, &p.AlreadyLiked); err != nil {
			return nil, fmt.Errorf("scan post row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) RecentComments(ctx context.Context, window time.Duration) ([]domain.CommentCandidate, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT c.id, c.post_id, c.content, c.author, c.user_id, c.created_at,
		       p.title, p.content, p.author, p.user_id,
		       NOT EXISTS (
		           SELECT 1 FROM comments c2
		           WHERE c2.post_id = c.post_id
		           AND c2.created_at > c.created_at
		           AND c2.created_at >= NOW() - make_interval(secs => $1)
		       ) AS is_latest_on_post,
		       EXISTS (
		           SELECT 1 FROM comments c3
		           WHERE c3.post_id = c.post_id
		           AND c3.user_id = p.user_id
		           AND c3.created_at > c.created_at
		       ) AS post_owner_replied_after
		FROM comments c
		JOIN posts p ON c.post_id = p.id
		WHERE c.created_at >= NOW() - make_interval(secs => $1)`,
		window.Seconds())
	if err != nil {
		return nil, fmt.Errorf("query recent comments: %w", err)
	}
	defer rows.Close()

	var out []domain.CommentCandidate
	for rows.Next() {
		var c domain.CommentCandidate
		if err := rows.Scan(&c.ID, &c.PostID, &c.Content, &c.Author, &c.UserID, &c.CreatedAt,
			&c.PostTitle, &c.PostContent, &c.PostAuthor, &c.PostUserID,
			&c.IsLatestOnPost, &c.PostOwnerRepliedAfter); err != nil {
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) SimilarProfiles(ctx context.Context, profileID int64, actorID string, interestIDs []int64) ([]domain.FollowCandidate, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT p.id, p.user_id, p.display_name,
		       COUNT(DISTINCT pi.interest_id) AS shared_interests,
		       EXISTS (
		           SELECT 1 FROM followers f
		           WHERE f.follower_id = $3 AND f.following_id = p.user_id
		       ) AS already_followed
		FROM profiles p
		JOIN profile_interests pi ON p.id = pi.profile_id
		WHERE pi.interest_id = ANY($1)
		AND p.id != $2
		AND p.user_id != $3
		GROUP BY p.id, p.user_id, p.display_name`,
		interestIDs, profileID, actorID)
	if err != nil {
		return nil, fmt.Errorf("query similar profiles: %w", err)
	}
	defer rows.Close()

	var out []domain.FollowCandidate
	for rows.Next() {
		var f domain.FollowCandidate
		if err := rows.Scan(&f.ID, &f.UserID, &f.DisplayName, &f.SharedInterests, &f.AlreadyFollowed); err != nil {
			return nil, fmt.Errorf("scan similar profile row: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ProfileInterests(ctx context.Context, profileID int64) ([]int64, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT interest_id FROM profile_interests WHERE profile_id = $1`, profileID)
	if err != nil {
		return nil, fmt.Errorf("query profile interests: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan interest id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *PostgresStore) Interests(ctx context.Context) ([]string, error) {
	return s.queryNames(ctx, `SELECT name FROM interests`)
}

func (s *PostgresStore) Exercises(ctx context.Context) ([]string, error) {
	return s.queryNames(ctx, `SELECT name FROM workout_exercises`)
}

func (s *PostgresStore) queryNames(ctx context.Context, sql string) ([]string, error) {
	rows, err := s.Pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CreatePost commits a post only if the author has no post within the
// current UTC day. The condition and the insert run as one statement, so
// two concurrent runs cannot both get through.
func (s *PostgresStore) CreatePost(ctx context.Context, post domain.Post) (int64, error) {
	var id int64
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO posts (title, content, image_url, author, user_id)
		SELECT $1, $2, $3, $4, $5
		WHERE NOT EXISTS (
		    SELECT 1 FROM posts
		    WHERE user_id = $5
		    AND created_at >= CURRENT_DATE
		    AND created_at < CURRENT_DATE + INTERVAL '1 day'
		)
		RETURNING id`,
		post.Title, post.Content, post.ImageURL, post.Author, post.UserID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrDailyPostLimit
	}
	if err != nil {
		return 0, &domain.PersistenceError{Op: "insert post", Err: err}
	}
	return id, nil
}

func (s *PostgresStore) CreateComment(ctx context.Context, comment domain.Comment) (int64, error) {
	var id int64
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO comments (post_id, content, author, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		comment.PostID, comment.Content, comment.Author, comment.UserID).Scan(&id)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "insert comment", Err: err}
	}
	return id, nil
}

// CreateLike relies on the selector having already excluded existing edges;
// a duplicate here means a concurrent run won the race and is surfaced as a
// hard error.
func (s *PostgresStore) CreateLike(ctx context.Context, like domain.Like) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO likes (post_id, user_id) VALUES ($1, $2)`,
		like.PostID, like.UserID)
	if err != nil {
		return &domain.PersistenceError{Op: "insert like", Err: err}
	}
	return nil
}

func (s *PostgresStore) CreateFollow(ctx context.Context, follow domain.Follow) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO followers (follower_id, following_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, following_id) DO NOTHING`,
		follow.FollowerID, follow.FollowingID)
	if err != nil {
		return &domain.PersistenceError{Op: "insert follow", Err: err}
	}
	return nil
}

// CreateProfile inserts the profile row and its interest associations in a
// single transaction; any failure rolls back the whole write.
func (s *PostgresStore) CreateProfile(ctx context.Context, profile domain.Profile) (int64, error) {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "begin profile tx", Err: err}
	}
	defer tx.Rollback(ctx)

	var profileID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO profiles (user_id, display_name, bio, custom_avatar_url, fitness_level)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		profile.UserID, profile.DisplayName, profile.Bio, profile.AvatarURL,
		string(profile.FitnessLevel)).Scan(&profileID)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "insert profile", Err: err}
	}

	rows, err := tx.Query(ctx,
		`SELECT id FROM interests WHERE name = ANY($1)`, profile.Interests)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "resolve interests", Err: err}
	}
	var interestIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, &domain.PersistenceError{Op: "scan interest id", Err: err}
		}
		interestIDs = append(interestIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, &domain.PersistenceError{Op: "resolve interests", Err: err}
	}

	for _, interestID := range interestIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO profile_interests (profile_id, interest_id)
			VALUES ($1, $2)`,
			profileID, interestID)
		if err != nil {
			return 0, &domain.PersistenceError{Op: "insert profile interest", Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, &domain.PersistenceError{Op: "commit profile tx", Err: err}
	}
	return profileID, nil
}
