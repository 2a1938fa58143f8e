package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/campus-hub/internal/domain"
	"github.com/spec-kit/campus-hub/internal/events"
	"github.com/spec-kit/campus-hub/internal/repository"
	apperrors "github.com/spec-kit/campus-hub/pkg/util/errorutil"
)

// EventService coordinates event, round, and scoring workflows.
type EventService struct {
	events       repository.EventRepository
	scores       repository.ScoreRepository
	participants repository.ParticipantRepository
	dispatcher   events.Dispatcher
}

// EventDependencies bundles repositories for the event service.
type EventDependencies struct {
	EventRepo       repository.EventRepository
	ScoreRepo       repository.ScoreRepository
	ParticipantRepo repository.ParticipantRepository
	Dispatcher      events.Dispatcher
}

// EventCreateInput describes event creation payload.
type EventCreateInput struct {
	Title       string
	Description string
	Venue       string
	StartsAt    *time.Time
	EndsAt      *time.Time
}

// RoundInput describes round creation/update payload.
type RoundInput struct {
	Name     string
	Sequence int
	MaxScore int
	StartsAt *time.Time
	EndsAt   *time.Time
}

// ScoreInput describes a score submission.
type ScoreInput struct {
	ParticipantID string
	Points        int
	Remarks       string
}

// NewEventService constructs the service.
func NewEventService(deps EventDependencies) *EventService {
	return &EventService{
		events:       deps.EventRepo,
		scores:       deps.ScoreRepo,
		participants: deps.ParticipantRepo,
		dispatcher:   deps.Dispatcher,
	}
}

// CreateEvent creates an unpublished event.
func (s *EventService) CreateEvent(ctx context.Context, creatorID string, input EventCreateInput) (*domain.Event, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return nil, apperrors.NewValidationError("event ends before it starts", nil)
	}

	event := &domain.Event{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Venue:       strings.TrimSpace(input.Venue),
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		Published:   false,
		CreatedBy:   creatorID,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateEvent mutates event details.
func (s *EventService) UpdateEvent(ctx context.Context, id string, input EventCreateInput) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if title := strings.TrimSpace(input.Title); title != "" {
		event.Title = title
	}
	event.Description = strings.TrimSpace(input.Description)
	event.Venue = strings.TrimSpace(input.Venue)
	event.StartsAt = input.StartsAt
	event.EndsAt = input.EndsAt
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// PublishEvent makes an event visible to participants and announces it.
func (s *EventService) PublishEvent(ctx context.Context, id, actorID string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Published {
		return event, nil
	}
	event.Published = true
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Activity{
		Type:      events.ActivityEventPublished,
		SubjectID: event.ID,
		Actor:     events.Actor{Kind: domain.PrincipalKindMember, ID: actorID},
		Payload: events.EventPublishedPayload{
			Title:    event.Title,
			Venue:    event.Venue,
			StartsAt: event.StartsAt,
		},
	})
	return event, nil
}

// UnpublishEvent hides an event from participants again. No activity is
// announced; retraction is silent.
func (s *EventService) UnpublishEvent(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.Published {
		return event, nil
	}
	event.Published = false
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// GetEvent returns an event visible to the caller. Participants only see
// published events.
func (s *EventService) GetEvent(ctx context.Context, id string, includeUnpublished bool) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.Published && !includeUnpublished {
		return nil, apperrors.NewNotFound("event", nil)
	}
	return event, nil
}

// ListEvents lists events, restricted to published ones for participants.
func (s *EventService) ListEvents(ctx context.Context, includeUnpublished bool, limit, offset int) ([]domain.Event, error) {
	return s.events.List(ctx, repository.EventFilter{
		PublishedOnly: !includeUnpublished,
		Limit:         limit,
		Offset:        offset,
	})
}

// CreateRound adds a round to an event.
func (s *EventService) CreateRound(ctx context.Context, eventID string, input RoundInput) (*domain.Round, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if input.MaxScore <= 0 {
		return nil, apperrors.NewValidationError("max_score must be positive", nil)
	}

	round := &domain.Round{
		EventID:  eventID,
		Name:     strings.TrimSpace(input.Name),
		Sequence: input.Sequence,
		MaxScore: input.MaxScore,
		StartsAt: input.StartsAt,
		EndsAt:   input.EndsAt,
	}
	if err := s.events.CreateRound(ctx, round); err != nil {
		return nil, err
	}
	return round, nil
}

// ListRounds returns an event's rounds in sequence order.
func (s *EventService) ListRounds(ctx context.Context, eventID string) ([]domain.Round, error) {
	return s.events.ListRounds(ctx, eventID)
}

// SubmitScore records a participant's score for a round. Resubmission
// overwrites; last writer wins.
func (s *EventService) SubmitScore(ctx context.Context, roundID, scorerID string, input ScoreInput) (*domain.Score, error) {
	round, err := s.events.GetRoundByID(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if input.Points < 0 || input.Points > round.MaxScore {
		return nil, apperrors.NewValidationError("points out of range", map[string]any{"max_score": round.MaxScore})
	}
	if _, err := s.participants.GetByID(ctx, input.ParticipantID); err != nil {
		return nil, err
	}

	score := &domain.Score{
		RoundID:       roundID,
		ParticipantID: input.ParticipantID,
		Points:        input.Points,
		Remarks:       strings.TrimSpace(input.Remarks),
		ScoredBy:      scorerID,
	}
	if err := s.scores.Upsert(ctx, score); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Activity{
		Type:      events.ActivityScoreRecorded,
		SubjectID: round.EventID,
		Actor:     events.Actor{Kind: domain.PrincipalKindMember, ID: scorerID},
		Payload: events.ScoreRecordedPayload{
			RoundID:       roundID,
			ParticipantID: input.ParticipantID,
			Points:        input.Points,
		},
	})
	return score, nil
}

// ListRoundScores returns all scores recorded for a round.
func (s *EventService) ListRoundScores(ctx context.Context, roundID string) ([]domain.Score, error) {
	if _, err := s.events.GetRoundByID(ctx, roundID); err != nil {
		return nil, err
	}
	return s.scores.ListByRound(ctx, roundID)
}

// Leaderboard aggregates participant totals across an event's rounds.
func (s *EventService) Leaderboard(ctx context.Context, eventID string) ([]domain.LeaderboardEntry, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.scores.Leaderboard(ctx, eventID)
}

func (s *EventService) publish(ctx context.Context, activity events.Activity) {
	if s.dispatcher == nil {
		return
	}
	activity.ID = uuid.NewString()
	activity.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, activity)
}
