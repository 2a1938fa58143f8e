package dto

import (
	"time"

	"github.com/spec-kit/campus-hub/internal/domain"
)

// CreatePostRequest payload.
type CreatePostRequest struct {
	Body string `json:"body"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Body string `json:"body"`
}

// PostResponse public post representation.
type PostResponse struct {
	ID         string    `json:"id"`
	AuthorKind string    `json:"author_kind"`
	AuthorID   string    `json:"author_id"`
	Body       string    `json:"body"`
	Hashtags   []string  `json:"hashtags"`
	LikeCount  int       `json:"like_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// CommentResponse public comment representation.
type CommentResponse struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	AuthorKind string    `json:"author_kind"`
	AuthorID   string    `json:"author_id"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// PostDetailResponse post with its comment thread.
type PostDetailResponse struct {
	PostResponse
	Comments []CommentResponse `json:"comments"`
}

// NewPostResponse maps the domain model.
func NewPostResponse(p *domain.Post) PostResponse {
	return PostResponse{
		ID:         p.ID,
		AuthorKind: string(p.AuthorKind),
		AuthorID:   p.AuthorID,
		Body:       p.Body,
		Hashtags:   p.Hashtags,
		LikeCount:  p.LikeCount,
		CreatedAt:  p.CreatedAt,
	}
}

// NewCommentResponse maps the domain model.
func NewCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		PostID:     c.PostID,
		AuthorKind: string(c.AuthorKind),
		AuthorID:   c.AuthorID,
		Body:       c.Body,
		CreatedAt:  c.CreatedAt,
	}
}

// NewPostDetailResponse maps a post with its comments.
func NewPostDetailResponse(p *domain.Post, comments []domain.Comment) PostDetailResponse {
	out := PostDetailResponse{
		PostResponse: NewPostResponse(p),
		Comments:     make([]CommentResponse, 0, len(comments)),
	}
	for i := range comments {
		out.Comments = append(out.Comments, NewCommentResponse(&comments[i]))
	}
	return out
}
