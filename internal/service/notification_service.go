package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/campus-hub/internal/events"
)

// NotificationService turns domain activities into notification records. The
// current sink is the structured log; push channels hang off the same
// subscriptions.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes notification handlers to the dispatcher.
func (s *NotificationService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.ActivityEventPublished, s.onEventPublished)
	s.dispatcher.Subscribe(events.ActivityScoreRecorded, s.onScoreRecorded)
	s.dispatcher.Subscribe(events.ActivityPostCreated, s.onPostCreated)
}

func (s *NotificationService) onEventPublished(_ context.Context, activity events.Activity) error {
	payload, ok := activity.Payload.(events.EventPublishedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("notification: event published",
		zap.String("event_id", activity.SubjectID),
		zap.String("title", payload.Title),
		zap.String("published_by", activity.Actor.ID),
	)
	return nil
}

func (s *NotificationService) onScoreRecorded(_ context.Context, activity events.Activity) error {
	payload, ok := activity.Payload.(events.ScoreRecordedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("notification: score recorded",
		zap.String("event_id", activity.SubjectID),
		zap.String("round_id", payload.RoundID),
		zap.String("participant_id", payload.ParticipantID),
		zap.Int("points", payload.Points),
	)
	return nil
}

func (s *NotificationService) onPostCreated(_ context.Context, activity events.Activity) error {
	payload, ok := activity.Payload.(events.PostCreatedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("notification: post created",
		zap.String("post_id", activity.SubjectID),
		zap.Strings("hashtags", payload.Hashtags),
	)
	return nil
}
