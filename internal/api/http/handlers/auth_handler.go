package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-hub/internal/api/dto"
	"github.com/spec-kit/campus-hub/internal/auth"
	"github.com/spec-kit/campus-hub/internal/domain"
	"github.com/spec-kit/campus-hub/internal/service"
	apperrors "github.com/spec-kit/campus-hub/pkg/util/errorutil"
)

// AuthHandler exposes registration, login, credential, and profile endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	identity *service.IdentityService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, identityService *service.IdentityService) *AuthHandler {
	return &AuthHandler{auth: authService, identity: identityService}
}

// Register handles POST /auth/participants/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.ParticipantRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Regno == "" || req.ProfileName == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("regno, profile_name, email, password required", nil)
	}

	participant, pair, err := h.auth.RegisterParticipant(c.UserContext(), service.ParticipantRegisterInput{
		Regno:       req.Regno,
		ProfileName: req.ProfileName,
		Name:        req.Name,
		Email:       req.Email,
		College:     req.College,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"participant": dto.NewParticipantResponse(participant),
			"auth":        tokenPairResponse(pair),
		},
	})
}

// LoginParticipant handles POST /auth/participants/login.
func (h *AuthHandler) LoginParticipant(c *fiber.Ctx) error {
	var req dto.ParticipantLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Handle == "" || req.Password == "" {
		return apperrors.NewValidationError("handle and password required", nil)
	}

	participant, pair, err := h.auth.LoginParticipant(c.UserContext(), req.Handle, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"participant": dto.NewParticipantResponse(participant),
			"auth":        tokenPairResponse(pair),
		},
	})
}

// LoginMember handles POST /auth/members/login.
func (h *AuthHandler) LoginMember(c *fiber.Ctx) error {
	var req dto.MemberLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	member, pair, err := h.auth.LoginMember(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"member": dto.NewMemberResponse(member),
			"auth":   tokenPairResponse(pair),
		},
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.RefreshToken == "" {
		return apperrors.NewValidationError("refresh_token required", nil)
	}

	pair, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"auth": tokenPairResponse(pair)}})
}

// RequestVerification handles POST /auth/verify/request.
func (h *AuthHandler) RequestVerification(c *fiber.Ctx) error {
	var req dto.EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	outcome, err := h.auth.RequestVerification(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"data": dto.IssueOutcomeResponse{Outcome: string(outcome.Public())},
	})
}

// ConfirmVerification handles POST /auth/verify/confirm.
func (h *AuthHandler) ConfirmVerification(c *fiber.Ctx) error {
	var req dto.VerifyConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	verified, err := h.auth.ConfirmVerification(c.UserContext(), req.Token)
	if err != nil {
		return err
	}
	if !verified {
		return apperrors.NewValidationError("invalid or expired token", nil)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "email_verified"}})
}

// RequestPasswordReset handles POST /auth/password/reset/request.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	outcome, err := h.auth.RequestPasswordReset(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"data": dto.IssueOutcomeResponse{Outcome: string(outcome.Public())},
	})
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("token and new password required", nil)
	}

	if err := h.auth.ConfirmPasswordReset(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_reset"}})
}

// ChangePassword handles POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("current and new password required", nil)
	}

	var holder domain.CredentialHolder
	switch {
	case principal.Participant != nil:
		holder = principal.Participant
	case principal.Member != nil:
		holder = principal.Member
	default:
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.auth.ChangePassword(c.UserContext(), holder, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_changed"}})
}

// UpdateProfile handles PUT /auth/profile. Identifier reassignment goes
// through the collision guard in the identity service.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Participant == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	participant, err := h.identity.UpdateProfile(c.UserContext(), principal.Participant.ID, service.ProfileUpdateInput{
		Regno:       req.Regno,
		ProfileName: req.ProfileName,
		Name:        req.Name,
		College:     req.College,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewParticipantResponse(participant)})
}

// CommunityToken handles POST /auth/community/token. Gated by the community
// capability at the route.
func (h *AuthHandler) CommunityToken(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Member == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	token, expiresAt, err := h.auth.IssueCommunityToken(c.UserContext(), principal.Member)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.CommunityTokenResponse{AccessToken: token, ExpiresAt: expiresAt},
	})
}

func tokenPairResponse(pair *service.TokenPair) dto.TokenPairResponse {
	return dto.TokenPairResponse{
		AccessToken:      pair.AccessToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshToken:     pair.RefreshToken,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}
}
