package dto

import (
	"time"

	"github.com/spec-kit/campus-hub/internal/domain"
)

// ParticipantRegisterRequest payload for new participants.
type ParticipantRegisterRequest struct {
	Regno       string `json:"regno"`
	ProfileName string `json:"profile_name"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	College     string `json:"college"`
	Password    string `json:"password"`
}

// ParticipantLoginRequest payload. Handle accepts either a registration
// number or a profile name.
type ParticipantLoginRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

// MemberLoginRequest payload for organization members.
type MemberLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest payload.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenPairResponse carries an issued access/refresh token set.
type TokenPairResponse struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// CommunityTokenResponse carries a community-account access token.
type CommunityTokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// EmailRequest payload for verification and reset initiation.
type EmailRequest struct {
	Email string `json:"email"`
}

// IssueOutcomeResponse reports the result of a token issuance request.
type IssueOutcomeResponse struct {
	Outcome string `json:"outcome"`
}

// VerifyConfirmRequest payload for confirming email verification.
type VerifyConfirmRequest struct {
	Token string `json:"token"`
}

// PasswordResetConfirmRequest payload for confirming reset.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ProfileUpdateRequest payload for profile edits. Omitted fields are left
// unchanged.
type ProfileUpdateRequest struct {
	Regno       *string `json:"regno"`
	ProfileName *string `json:"profile_name"`
	Name        *string `json:"name"`
	College     *string `json:"college"`
}

// PasswordChangeRequest payload for authenticated password changes.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ParticipantResponse public participant representation.
type ParticipantResponse struct {
	ID            string     `json:"id"`
	Regno         string     `json:"regno"`
	ProfileName   string     `json:"profile_name"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	College       string     `json:"college"`
	TeamID        *string    `json:"team_id"`
	Status        string     `json:"status"`
	EmailVerified bool       `json:"email_verified"`
	CreatedAt     time.Time  `json:"created_at"`
}

// MemberResponse public member representation.
type MemberResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Designation string    `json:"designation"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewParticipantResponse maps the domain model, omitting credential state.
func NewParticipantResponse(p *domain.Participant) ParticipantResponse {
	return ParticipantResponse{
		ID:            p.ID,
		Regno:         p.Regno,
		ProfileName:   p.ProfileName,
		Name:          p.Name,
		Email:         p.Email,
		College:       p.College,
		TeamID:        p.TeamID,
		Status:        string(p.Status),
		EmailVerified: p.Credentials.EmailVerifiedAt != nil,
		CreatedAt:     p.CreatedAt,
	}
}

// NewMemberResponse maps the domain model, omitting credential state.
func NewMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		ID:          m.ID,
		Username:    m.Username,
		Name:        m.Name,
		Email:       m.Email,
		Designation: m.Designation,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
	}
}
