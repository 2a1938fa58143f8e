package domain

import "time"

// Event is a competition or workshop run by the organization.
type Event struct {
	ID          string
	Title       string
	Description string
	Venue       string
	StartsAt    *time.Time
	EndsAt      *time.Time
	Published   bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Round is a stage within an event. Scores are recorded per round.
type Round struct {
	ID        string
	EventID   string
	Name      string
	Sequence  int
	MaxScore  int
	StartsAt  *time.Time
	EndsAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Score records the points a participant earned in a round.
type Score struct {
	ID            string
	RoundID       string
	ParticipantID string
	Points        int
	Remarks       string
	ScoredBy      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LeaderboardEntry aggregates a participant's total across an event's rounds.
type LeaderboardEntry struct {
	ParticipantID string
	ProfileName   string
	TotalPoints   int
	RoundsScored  int
}
