package dto

import (
	"time"

	"github.com/spec-kit/campus-hub/internal/domain"
)

// CreateEventRequest payload.
type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Venue       string     `json:"venue"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

// CreateRoundRequest payload.
type CreateRoundRequest struct {
	Name     string     `json:"name"`
	Sequence int        `json:"sequence"`
	MaxScore int        `json:"max_score"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// SubmitScoreRequest payload.
type SubmitScoreRequest struct {
	ParticipantID string `json:"participant_id"`
	Points        int    `json:"points"`
	Remarks       string `json:"remarks"`
}

// EventResponse public event representation.
type EventResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Venue       string     `json:"venue"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Published   bool       `json:"published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RoundResponse public round representation.
type RoundResponse struct {
	ID       string     `json:"id"`
	EventID  string     `json:"event_id"`
	Name     string     `json:"name"`
	Sequence int        `json:"sequence"`
	MaxScore int        `json:"max_score"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// ScoreResponse public score representation.
type ScoreResponse struct {
	ID            string    `json:"id"`
	RoundID       string    `json:"round_id"`
	ParticipantID string    `json:"participant_id"`
	Points        int       `json:"points"`
	Remarks       string    `json:"remarks,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LeaderboardEntryResponse aggregated standing for one participant.
type LeaderboardEntryResponse struct {
	ParticipantID string `json:"participant_id"`
	ProfileName   string `json:"profile_name"`
	TotalPoints   int    `json:"total_points"`
	RoundsScored  int    `json:"rounds_scored"`
}

// NewEventResponse maps the domain model.
func NewEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Venue:       e.Venue,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Published:   e.Published,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// NewRoundResponse maps the domain model.
func NewRoundResponse(r *domain.Round) RoundResponse {
	return RoundResponse{
		ID:       r.ID,
		EventID:  r.EventID,
		Name:     r.Name,
		Sequence: r.Sequence,
		MaxScore: r.MaxScore,
		StartsAt: r.StartsAt,
		EndsAt:   r.EndsAt,
	}
}

// NewScoreResponse maps the domain model.
func NewScoreResponse(s *domain.Score) ScoreResponse {
	return ScoreResponse{
		ID:            s.ID,
		RoundID:       s.RoundID,
		ParticipantID: s.ParticipantID,
		Points:        s.Points,
		Remarks:       s.Remarks,
		UpdatedAt:     s.UpdatedAt,
	}
}

// NewLeaderboardResponse maps aggregated standings.
func NewLeaderboardResponse(entries []domain.LeaderboardEntry) []LeaderboardEntryResponse {
	out := make([]LeaderboardEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, LeaderboardEntryResponse{
			ParticipantID: entry.ParticipantID,
			ProfileName:   entry.ProfileName,
			TotalPoints:   entry.TotalPoints,
			RoundsScored:  entry.RoundsScored,
		})
	}
	return out
}
