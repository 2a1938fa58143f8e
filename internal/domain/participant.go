package domain

import "time"

// ParticipantStatus represents lifecycle states for a participant.
type ParticipantStatus string

const (
	ParticipantStatusActive    ParticipantStatus = "ACTIVE"
	ParticipantStatusSuspended ParticipantStatus = "SUSPENDED"
)

// Participant is the domain model for students who register for events.
// Regno and ProfileName are both usable as lookup handles, so the two
// namespaces must never collide with each other.
type Participant struct {
	ID          string
	Regno       string
	ProfileName string
	Name        string
	Email       string
	College     string
	TeamID      *string
	Status      ParticipantStatus
	Credentials Credentials
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Participant) AccountID() string         { return p.ID }
func (p *Participant) AccountKind() PrincipalKind { return PrincipalKindParticipant }
func (p *Participant) EmailAddress() string      { return p.Email }
func (p *Participant) DisplayName() string       { return p.Name }
func (p *Participant) Creds() *Credentials       { return &p.Credentials }
