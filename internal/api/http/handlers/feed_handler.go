package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-hub/internal/api/dto"
	"github.com/spec-kit/campus-hub/internal/auth"
	"github.com/spec-kit/campus-hub/internal/domain"
	"github.com/spec-kit/campus-hub/internal/service"
	apperrors "github.com/spec-kit/campus-hub/pkg/util/errorutil"
)

// FeedHandler exposes community-hub endpoints.
type FeedHandler struct {
	feed *service.FeedService
}

// NewFeedHandler constructs handler.
func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{feed: feedService}
}

// CreatePost handles POST /feed/posts.
func (h *FeedHandler) CreatePost(c *fiber.Ctx) error {
	kind, actorID, err := feedActor(c)
	if err != nil {
		return err
	}

	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	post, err := h.feed.CreatePost(c.UserContext(), kind, actorID, req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPostResponse(post)})
}

// ListPosts handles GET /feed/posts.
func (h *FeedHandler) ListPosts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	posts, err := h.feed.ListPosts(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}

	out := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, dto.NewPostResponse(&posts[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// GetPost handles GET /feed/posts/:id.
func (h *FeedHandler) GetPost(c *fiber.Ctx) error {
	post, comments, err := h.feed.GetPost(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPostDetailResponse(post, comments)})
}

// DeletePost handles DELETE /feed/posts/:id.
func (h *FeedHandler) DeletePost(c *fiber.Ctx) error {
	_, actorID, err := feedActor(c)
	if err != nil {
		return err
	}
	if err := h.feed.DeletePost(c.UserContext(), c.Params("id"), actorID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// AddComment handles POST /feed/posts/:id/comments.
func (h *FeedHandler) AddComment(c *fiber.Ctx) error {
	kind, actorID, err := feedActor(c)
	if err != nil {
		return err
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.feed.AddComment(c.UserContext(), c.Params("id"), kind, actorID, req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// Like handles PUT /feed/posts/:id/like.
func (h *FeedHandler) Like(c *fiber.Ctx) error {
	_, actorID, err := feedActor(c)
	if err != nil {
		return err
	}
	if err := h.feed.LikePost(c.UserContext(), c.Params("id"), actorID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "liked"}})
}

// Unlike handles DELETE /feed/posts/:id/like.
func (h *FeedHandler) Unlike(c *fiber.Ctx) error {
	_, actorID, err := feedActor(c)
	if err != nil {
		return err
	}
	if err := h.feed.UnlikePost(c.UserContext(), c.Params("id"), actorID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "unliked"}})
}

// feedActor resolves the posting identity. Community tokens act as the shared
// account, so the actor ID is the member behind the token but the kind stays
// COMMUNITY.
func feedActor(c *fiber.Ctx) (domain.PrincipalKind, string, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return "", "", apperrors.NewUnauthorized("authentication required")
	}
	switch {
	case principal.Participant != nil:
		return principal.Kind, principal.Participant.ID, nil
	case principal.Member != nil:
		return principal.Kind, principal.Member.ID, nil
	}
	return "", "", apperrors.NewUnauthorized("authentication required")
}
