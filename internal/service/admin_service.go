package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/campus-hub/internal/auth"
	"github.com/spec-kit/campus-hub/internal/config"
	"github.com/spec-kit/campus-hub/internal/domain"
	"github.com/spec-kit/campus-hub/internal/repository"
	apperrors "github.com/spec-kit/campus-hub/pkg/util/errorutil"
)

// AdminService covers organization administration: member accounts, policy
// grants, and team management.
type AdminService struct {
	members    repository.MemberRepository
	admins     repository.AdminRepository
	teams      repository.TeamRepository
	bcryptCost int
}

// AdminDependencies bundles repositories for the admin service.
type AdminDependencies struct {
	MemberRepo repository.MemberRepository
	AdminRepo  repository.AdminRepository
	TeamRepo   repository.TeamRepository
}

// MemberCreateInput describes a new organization member.
type MemberCreateInput struct {
	Username    string
	Name        string
	Email       string
	Designation string
	Password    string
}

// TeamInput describes team creation/update payload.
type TeamInput struct {
	Name     string
	College  string
	IsActive bool
}

// NewAdminService builds the service.
func NewAdminService(cfg config.Config, deps AdminDependencies) *AdminService {
	return &AdminService{
		members:    deps.MemberRepo,
		admins:     deps.AdminRepo,
		teams:      deps.TeamRepo,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// CreateMember registers an organization member account.
func (s *AdminService) CreateMember(ctx context.Context, input MemberCreateInput) (*domain.Member, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, apperrors.NewValidationError("username required", nil)
	}
	if _, err := s.members.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflict("username already taken", nil)
	} else if err != pgx.ErrNoRows {
		return nil, err
	}
	if _, err := s.members.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	member := &domain.Member{
		Username:    username,
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.TrimSpace(input.Email),
		Designation: strings.TrimSpace(input.Designation),
		Active:      true,
		Credentials: domain.Credentials{PasswordHash: hash},
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// ListMembers pages through member accounts.
func (s *AdminService) ListMembers(ctx context.Context, limit, offset int) ([]domain.Member, error) {
	return s.members.List(ctx, limit, offset)
}

// SetMemberActive toggles a member account. Deactivated members fail login
// and token refresh immediately; outstanding access tokens lapse at expiry.
func (s *AdminService) SetMemberActive(ctx context.Context, memberID string, active bool) (*domain.Member, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	member.Active = active
	if err := s.members.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// GrantAdmin attaches a policy document to a member. Granting to a member who
// already has one is a conflict; use UpdatePolicy instead.
func (s *AdminService) GrantAdmin(ctx context.Context, memberID string, policy domain.PolicyDoc) (*domain.Admin, error) {
	if _, err := s.members.GetByID(ctx, memberID); err != nil {
		return nil, err
	}
	if _, err := s.admins.GetByMemberID(ctx, memberID); err == nil {
		return nil, apperrors.NewConflict("member is already an admin", nil)
	} else if err != pgx.ErrNoRows {
		return nil, err
	}
	if policy == nil {
		policy = domain.PolicyDoc{}
	}

	admin := &domain.Admin{MemberID: memberID, Policy: policy}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// UpdatePolicy replaces a member's policy document wholesale.
func (s *AdminService) UpdatePolicy(ctx context.Context, memberID string, policy domain.PolicyDoc) (*domain.Admin, error) {
	admin, err := s.admins.GetByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		policy = domain.PolicyDoc{}
	}
	admin.Policy = policy
	if err := s.admins.UpdatePolicy(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// RevokeAdmin removes a member's policy document entirely.
func (s *AdminService) RevokeAdmin(ctx context.Context, memberID string) error {
	return s.admins.Delete(ctx, memberID)
}

// ListAdmins returns every admin with their policy documents.
func (s *AdminService) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	return s.admins.List(ctx)
}

// CreateTeam registers a participant team.
func (s *AdminService) CreateTeam(ctx context.Context, input TeamInput) (*domain.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	team := &domain.Team{
		Name:     name,
		College:  strings.TrimSpace(input.College),
		IsActive: true,
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// UpdateTeam mutates team details.
func (s *AdminService) UpdateTeam(ctx context.Context, id string, input TeamInput) (*domain.Team, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		team.Name = name
	}
	team.College = strings.TrimSpace(input.College)
	team.IsActive = input.IsActive
	if err := s.teams.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// ListTeams returns teams, optionally including inactive ones.
func (s *AdminService) ListTeams(ctx context.Context, includeInactive bool) ([]domain.Team, error) {
	return s.teams.List(ctx, includeInactive)
}
