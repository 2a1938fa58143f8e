package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campus-hub/internal/domain"
)

// PostRepository manages community-hub posts, comments, and likes.
type PostRepository interface {
	CreatePost(ctx context.Context, post *domain.Post) error
	GetPostByID(ctx context.Context, id string) (*domain.Post, error)
	ListPosts(ctx context.Context, limit, offset int) ([]domain.Post, error)
	DeletePost(ctx context.Context, id string) error
	CreateComment(ctx context.Context, comment *domain.Comment) error
	ListComments(ctx context.Context, postID string) ([]domain.Comment, error)
	AddLike(ctx context.Context, postID, subjectID string) (bool, error)
	RemoveLike(ctx context.Context, postID, subjectID string) (bool, error)
}

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository constructs repository.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

func (r *postRepository) CreatePost(ctx context.Context, post *domain.Post) error {
	const query = `
        INSERT INTO posts (author_kind, author_id, body, hashtags)
        VALUES ($1,$2,$3,$4)
        RETURNING id, like_count, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		post.AuthorKind,
		post.AuthorID,
		post.Body,
		post.Hashtags,
	).Scan(&post.ID, &post.LikeCount, &post.CreatedAt, &post.UpdatedAt)
}

func (r *postRepository) GetPostByID(ctx context.Context, id string) (*domain.Post, error) {
	const query = `
        SELECT id, author_kind, author_id, body, hashtags, like_count, created_at, updated_at
        FROM posts WHERE id=$1`
	var post domain.Post
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.AuthorKind,
		&post.AuthorID,
		&post.Body,
		&post.Hashtags,
		&post.LikeCount,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListPosts(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	const query = `
        SELECT id, author_kind, author_id, body, hashtags, like_count, created_at, updated_at
        FROM posts ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(
			&post.ID,
			&post.AuthorKind,
			&post.AuthorID,
			&post.Body,
			&post.Hashtags,
			&post.LikeCount,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepository) DeletePost(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postRepository) CreateComment(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (post_id, author_kind, author_id, body)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		comment.PostID,
		comment.AuthorKind,
		comment.AuthorID,
		comment.Body,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *postRepository) ListComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	const query = `
        SELECT id, post_id, author_kind, author_id, body, created_at
        FROM comments WHERE post_id=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0)
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorKind,
			&comment.AuthorID,
			&comment.Body,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// AddLike inserts a like if absent and bumps the denormalized counter.
// Returns false when the subject already liked the post.
func (r *postRepository) AddLike(ctx context.Context, postID, subjectID string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `
        INSERT INTO likes (post_id, subject_id)
        VALUES ($1,$2)
        ON CONFLICT (post_id, subject_id) DO NOTHING`, postID, subjectID)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() == 0 {
		return false, nil
	}
	_, err = r.pool.Exec(ctx, `UPDATE posts SET like_count = like_count + 1 WHERE id=$1`, postID)
	return true, err
}

// RemoveLike deletes a like if present and decrements the counter.
func (r *postRepository) RemoveLike(ctx context.Context, postID, subjectID string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM likes WHERE post_id=$1 AND subject_id=$2`, postID, subjectID)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() == 0 {
		return false, nil
	}
	_, err = r.pool.Exec(ctx, `UPDATE posts SET like_count = GREATEST(like_count - 1, 0) WHERE id=$1`, postID)
	return true, err
}
