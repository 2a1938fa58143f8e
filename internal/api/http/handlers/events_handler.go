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

// EventsHandler exposes event, round, and scoring endpoints.
type EventsHandler struct {
	events *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService) *EventsHandler {
	return &EventsHandler{events: eventService}
}

// Create handles POST /events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Member == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	event, err := h.events.CreateEvent(c.UserContext(), principal.Member.ID, service.EventCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Update handles PUT /events/:id.
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	event, err := h.events.UpdateEvent(c.UserContext(), c.Params("id"), service.EventCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Publish handles POST /events/:id/publish.
func (h *EventsHandler) Publish(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Member == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	event, err := h.events.PublishEvent(c.UserContext(), c.Params("id"), principal.Member.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Unpublish handles DELETE /events/:id/publish.
func (h *EventsHandler) Unpublish(c *fiber.Ctx) error {
	event, err := h.events.UnpublishEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Get handles GET /events/:id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	event, err := h.events.GetEvent(c.UserContext(), c.Params("id"), callerIsMember(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// List handles GET /events.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	events, err := h.events.ListEvents(c.UserContext(), callerIsMember(c), limit, offset)
	if err != nil {
		return err
	}

	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, dto.NewEventResponse(&events[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// CreateRound handles POST /events/:id/rounds.
func (h *EventsHandler) CreateRound(c *fiber.Ctx) error {
	var req dto.CreateRoundRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	round, err := h.events.CreateRound(c.UserContext(), c.Params("id"), service.RoundInput{
		Name:     req.Name,
		Sequence: req.Sequence,
		MaxScore: req.MaxScore,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewRoundResponse(round)})
}

// ListRounds handles GET /events/:id/rounds.
func (h *EventsHandler) ListRounds(c *fiber.Ctx) error {
	rounds, err := h.events.ListRounds(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	out := make([]dto.RoundResponse, 0, len(rounds))
	for i := range rounds {
		out = append(out, dto.NewRoundResponse(&rounds[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// SubmitScore handles PUT /rounds/:id/scores.
func (h *EventsHandler) SubmitScore(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Member == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.SubmitScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ParticipantID == "" {
		return apperrors.NewValidationError("participant_id required", nil)
	}

	score, err := h.events.SubmitScore(c.UserContext(), c.Params("id"), principal.Member.ID, service.ScoreInput{
		ParticipantID: req.ParticipantID,
		Points:        req.Points,
		Remarks:       req.Remarks,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewScoreResponse(score)})
}

// ListScores handles GET /rounds/:id/scores.
func (h *EventsHandler) ListScores(c *fiber.Ctx) error {
	scores, err := h.events.ListRoundScores(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	out := make([]dto.ScoreResponse, 0, len(scores))
	for i := range scores {
		out = append(out, dto.NewScoreResponse(&scores[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Leaderboard handles GET /events/:id/leaderboard.
func (h *EventsHandler) Leaderboard(c *fiber.Ctx) error {
	entries, err := h.events.Leaderboard(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeaderboardResponse(entries)})
}

// callerIsMember reports whether the request carries a member principal.
// Unauthenticated and participant callers only see published events.
func callerIsMember(c *fiber.Ctx) bool {
	principal, ok := auth.PrincipalFromContext(c)
	return ok && principal.Kind == domain.PrincipalKindMember
}
