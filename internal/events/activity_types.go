package events

import (
	"time"

	"github.com/spec-kit/campus-hub/internal/domain"
)

// ActivityType enumerates supported activity identifiers.
type ActivityType string

const (
	ActivityEventPublished ActivityType = "event_published"
	ActivityScoreRecorded  ActivityType = "score_recorded"
	ActivityPostCreated    ActivityType = "post_created"
)

// Actor encapsulates actor metadata for an activity.
type Actor struct {
	Kind domain.PrincipalKind `json:"kind"`
	ID   string               `json:"id"`
}

// Activity represents a domain activity emitted by services.
type Activity struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	SubjectID string       `json:"subject_id"`
	Actor     Actor        `json:"actor"`
	Timestamp time.Time    `json:"timestamp"`
	Payload   interface{}  `json:"payload"`
}

// EventPublishedPayload payload.
type EventPublishedPayload struct {
	Title    string     `json:"title"`
	Venue    string     `json:"venue,omitempty"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
}

// ScoreRecordedPayload payload.
type ScoreRecordedPayload struct {
	RoundID       string `json:"round_id"`
	ParticipantID string `json:"participant_id"`
	Points        int    `json:"points"`
}

// PostCreatedPayload payload.
type PostCreatedPayload struct {
	Hashtags    []string `json:"hashtags,omitempty"`
	BodyPreview string   `json:"body_preview"`
}
