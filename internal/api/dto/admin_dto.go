package dto

import (
	"time"

	"github.com/spec-kit/campus-hub/internal/domain"
)

// CreateMemberRequest payload for new organization members.
type CreateMemberRequest struct {
	Username    string `json:"username"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Designation string `json:"designation"`
	Password    string `json:"password"`
}

// SetMemberActiveRequest payload.
type SetMemberActiveRequest struct {
	Active bool `json:"active"`
}

// PolicyRequest payload for granting or replacing a policy document.
type PolicyRequest struct {
	Policy domain.PolicyDoc `json:"policy"`
}

// AdminResponse admin grant with its policy document.
type AdminResponse struct {
	ID        string           `json:"id"`
	MemberID  string           `json:"member_id"`
	Policy    domain.PolicyDoc `json:"policy"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// CreateTeamRequest payload.
type CreateTeamRequest struct {
	Name     string `json:"name"`
	College  string `json:"college"`
	IsActive bool   `json:"is_active"`
}

// TeamResponse public team representation.
type TeamResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	College   string    `json:"college"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAdminResponse maps the domain model.
func NewAdminResponse(a *domain.Admin) AdminResponse {
	return AdminResponse{
		ID:        a.ID,
		MemberID:  a.MemberID,
		Policy:    a.Policy,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// NewTeamResponse maps the domain model.
func NewTeamResponse(t *domain.Team) TeamResponse {
	return TeamResponse{
		ID:        t.ID,
		Name:      t.Name,
		College:   t.College,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
	}
}
