package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/campus-hub/internal/domain"
	"github.com/spec-kit/campus-hub/internal/events"
	"github.com/spec-kit/campus-hub/internal/repository"
	apperrors "github.com/spec-kit/campus-hub/pkg/util/errorutil"
)

const maxPostLength = 2000

var hashtagPattern = regexp.MustCompile(`#([A-Za-z0-9_]+)`)

// FeedService coordinates the community-hub feed.
type FeedService struct {
	posts      repository.PostRepository
	dispatcher events.Dispatcher
}

// NewFeedService constructs the service.
func NewFeedService(posts repository.PostRepository, dispatcher events.Dispatcher) *FeedService {
	return &FeedService{posts: posts, dispatcher: dispatcher}
}

// CreatePost writes a feed entry, extracting hashtags from the body.
func (s *FeedService) CreatePost(ctx context.Context, authorKind domain.PrincipalKind, authorID, body string) (*domain.Post, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("body required", nil)
	}
	if len(body) > maxPostLength {
		return nil, apperrors.NewValidationError("body too long", map[string]any{"max_length": maxPostLength})
	}

	post := &domain.Post{
		AuthorKind: authorKind,
		AuthorID:   authorID,
		Body:       body,
		Hashtags:   ExtractHashtags(body),
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		preview := post.Body
		if len(preview) > 80 {
			preview = preview[:80]
		}
		_ = s.dispatcher.Publish(ctx, events.Activity{
			ID:        uuid.NewString(),
			Type:      events.ActivityPostCreated,
			SubjectID: post.ID,
			Actor:     events.Actor{Kind: authorKind, ID: authorID},
			Timestamp: time.Now(),
			Payload: events.PostCreatedPayload{
				Hashtags:    post.Hashtags,
				BodyPreview: preview,
			},
		})
	}
	return post, nil
}

// GetPost returns a post with its comments.
func (s *FeedService) GetPost(ctx context.Context, id string) (*domain.Post, []domain.Comment, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	comments, err := s.posts.ListComments(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return post, comments, nil
}

// ListPosts returns the feed, newest first.
func (s *FeedService) ListPosts(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	return s.posts.ListPosts(ctx, limit, offset)
}

// DeletePost removes a post. Only the author may delete their own post;
// moderators go through the admin surface.
func (s *FeedService) DeletePost(ctx context.Context, id, requesterID string) error {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != requesterID {
		return apperrors.NewForbidden("forbidden")
	}
	return s.posts.DeletePost(ctx, id)
}

// AddComment appends a comment to a post.
func (s *FeedService) AddComment(ctx context.Context, postID string, authorKind domain.PrincipalKind, authorID, body string) (*domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("body required", nil)
	}
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		PostID:     postID,
		AuthorKind: authorKind,
		AuthorID:   authorID,
		Body:       body,
	}
	if err := s.posts.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// LikePost records a like. Liking twice is a no-op, not an error.
func (s *FeedService) LikePost(ctx context.Context, postID, subjectID string) error {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return err
	}
	_, err := s.posts.AddLike(ctx, postID, subjectID)
	return err
}

// UnlikePost removes a like. Removing an absent like is a no-op.
func (s *FeedService) UnlikePost(ctx context.Context, postID, subjectID string) error {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return err
	}
	_, err := s.posts.RemoveLike(ctx, postID, subjectID)
	return err
}

// ExtractHashtags returns the distinct lowercase hashtags in body, in order
// of first appearance.
func ExtractHashtags(body string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(body, -1)
	seen := make(map[string]struct{}, len(matches))
	tags := make([]string, 0, len(matches))
	for _, match := range matches {
		tag := strings.ToLower(match[1])
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
