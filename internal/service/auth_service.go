package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/campus-hub/internal/auth"
	"github.com/spec-kit/campus-hub/internal/config"
	"github.com/spec-kit/campus-hub/internal/domain"
	"github.com/spec-kit/campus-hub/internal/repository"
	apperrors "github.com/spec-kit/campus-hub/pkg/util/errorutil"
)

// TokenPair carries an access/refresh token set issued on login or refresh.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// ParticipantRegisterInput describes the registration payload.
type ParticipantRegisterInput struct {
	Regno       string
	ProfileName string
	Name        string
	Email       string
	College     string
	Password    string
}

// AuthService coordinates registration, login, and credential flows.
type AuthService struct {
	participants repository.ParticipantRepository
	members      repository.MemberRepository
	credentials  *CredentialService
	identity     *IdentityService
	tokenMgr     *auth.TokenManager
	bcryptCost   int
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	ParticipantRepo repository.ParticipantRepository
	MemberRepo      repository.MemberRepository
	Credentials     *CredentialService
	Identity        *IdentityService
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		participants: deps.ParticipantRepo,
		members:      deps.MemberRepo,
		credentials:  deps.Credentials,
		identity:     deps.Identity,
		tokenMgr:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL()),
		bcryptCost:   cfg.Auth.BcryptCost,
	}
}

// RegisterParticipant creates a participant account and issues a verification
// email plus an initial token pair.
func (s *AuthService) RegisterParticipant(ctx context.Context, input ParticipantRegisterInput) (*domain.Participant, *TokenPair, error) {
	if _, err := s.participants.GetByEmail(ctx, input.Email); err == nil {
		return nil, nil, apperrors.NewConflict("email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, nil, err
	}
	if _, err := s.participants.GetByRegno(ctx, input.Regno); err == nil {
		return nil, nil, apperrors.NewConflict("registration number already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, nil, err
	}
	if _, err := s.participants.GetByProfileName(ctx, input.ProfileName); err == nil {
		return nil, nil, apperrors.NewConflict("profile name already taken", nil)
	} else if err != pgx.ErrNoRows {
		return nil, nil, err
	}
	if err := s.identity.EnsureNoIdentifierCollision(ctx, "", &input.Regno, &input.ProfileName); err != nil {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	participant := &domain.Participant{
		Regno:       input.Regno,
		ProfileName: input.ProfileName,
		Name:        input.Name,
		Email:       input.Email,
		College:     input.College,
		Status:      domain.ParticipantStatusActive,
		Credentials: domain.Credentials{PasswordHash: hash},
	}
	if err := s.participants.Create(ctx, participant); err != nil {
		return nil, nil, err
	}

	if _, err := s.credentials.IssueVerification(ctx, participant); err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(participant.Regno, domain.PrincipalKindParticipant)
	if err != nil {
		return nil, nil, err
	}
	return participant, pair, nil
}

// LoginParticipant authenticates by registration number or profile name.
func (s *AuthService) LoginParticipant(ctx context.Context, handle, password string) (*domain.Participant, *TokenPair, error) {
	participant, err := s.participants.GetByRegno(ctx, handle)
	if err == pgx.ErrNoRows {
		participant, err = s.participants.GetByProfileName(ctx, handle)
	}
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, nil, err
	}
	if participant.Status != domain.ParticipantStatusActive {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if !auth.VerifyPassword(password, participant.Credentials.PasswordHash) {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	pair, err := s.issuePair(participant.Regno, domain.PrincipalKindParticipant)
	if err != nil {
		return nil, nil, err
	}
	return participant, pair, nil
}

// LoginMember authenticates an organization member.
func (s *AuthService) LoginMember(ctx context.Context, username, password string) (*domain.Member, *TokenPair, error) {
	member, err := s.members.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, nil, err
	}
	if !member.Active {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if !auth.VerifyPassword(password, member.Credentials.PasswordHash) {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	pair, err := s.issuePair(member.Username, domain.PrincipalKindMember)
	if err != nil {
		return nil, nil, err
	}
	return member, pair, nil
}

// Refresh mints a fresh token pair from a refresh-purpose token. Access tokens
// presented here are rejected as invalid.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokenMgr.Decode(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}
	if claims.Purpose != domain.TokenPurposeRefresh {
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	switch claims.Kind {
	case domain.PrincipalKindParticipant:
		participant, err := s.participants.GetByRegno(ctx, claims.Subject)
		if err != nil || participant.Status != domain.ParticipantStatusActive {
			return nil, apperrors.NewUnauthorized("invalid token")
		}
	case domain.PrincipalKindMember, domain.PrincipalKindCommunity:
		member, err := s.members.GetByUsername(ctx, claims.Subject)
		if err != nil || !member.Active {
			return nil, apperrors.NewUnauthorized("invalid token")
		}
	default:
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	return s.issuePair(claims.Subject, claims.Kind)
}

// ChangePassword verifies the current password before storing a new digest.
func (s *AuthService) ChangePassword(ctx context.Context, holder domain.CredentialHolder, currentPassword, newPassword string) error {
	if !auth.VerifyPassword(currentPassword, holder.Creds().PasswordHash) {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.credentials.UpdatePassword(ctx, holder, hash)
}

// RequestVerification issues a verification token for whichever account owns
// the email. Unknown addresses report success without sending, so the endpoint
// cannot be used to probe which emails have accounts.
func (s *AuthService) RequestVerification(ctx context.Context, email string) (IssueOutcome, error) {
	holder, err := s.findByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if holder == nil {
		return OutcomeSent, nil
	}
	return s.credentials.IssueVerification(ctx, holder)
}

// RequestPasswordReset issues a reset token for whichever account owns the email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (IssueOutcome, error) {
	holder, err := s.findByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if holder == nil {
		return OutcomeSent, nil
	}
	return s.credentials.IssuePasswordReset(ctx, holder)
}

// ConfirmVerification redeems a verification token.
func (s *AuthService) ConfirmVerification(ctx context.Context, rawToken string) (bool, error) {
	holder, err := s.credentials.RedeemVerification(ctx, rawToken)
	if err != nil {
		return false, err
	}
	return holder != nil, nil
}

// ConfirmPasswordReset redeems a reset token and stores the new password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, rawToken, newPassword string) error {
	holder, err := s.credentials.RedeemPasswordReset(ctx, rawToken)
	if err != nil {
		return err
	}
	if holder == nil {
		return apperrors.NewValidationError("invalid or expired token", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.credentials.UpdatePassword(ctx, holder, hash)
}

// IssueCommunityToken mints an access token for posting as the shared
// community account. Gated by the community capability at the route.
func (s *AuthService) IssueCommunityToken(ctx context.Context, member *domain.Member) (string, time.Time, error) {
	return s.tokenMgr.IssueAccess(member.Username, domain.PrincipalKindCommunity)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (domain.CredentialHolder, error) {
	participant, err := s.participants.GetByEmail(ctx, email)
	if err == nil {
		return participant, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}
	member, err := s.members.GetByEmail(ctx, email)
	if err == nil {
		return member, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}
	return nil, nil
}

func (s *AuthService) issuePair(subject string, kind domain.PrincipalKind) (*TokenPair, error) {
	access, accessExp, err := s.tokenMgr.IssueAccess(subject, kind)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.tokenMgr.IssueRefresh(subject, kind)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}
