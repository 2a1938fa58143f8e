package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/campus-hub/internal/domain"
	"github.com/spec-kit/campus-hub/internal/repository"
	apperrors "github.com/spec-kit/campus-hub/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. Community tokens resolve to
// the member who minted them, with Kind reflecting the token.
type Principal struct {
	Kind        domain.PrincipalKind
	Participant *domain.Participant
	Member      *domain.Member
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens       *TokenManager
	participants repository.ParticipantRepository
	members      repository.MemberRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, participants repository.ParticipantRepository, members repository.MemberRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, participants: participants, members: members}
}

// Handle enforces authentication for protected routes. Only access-purpose
// tokens are accepted here; refresh tokens are rejected as invalid.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Decode(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}
	if claims.Purpose != domain.TokenPurposeAccess {
		return apperrors.NewUnauthorized("invalid token")
	}

	principal := &Principal{Kind: claims.Kind}

	switch claims.Kind {
	case domain.PrincipalKindParticipant:
		participant, err := m.participants.GetByRegno(c.UserContext(), claims.Subject)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewUnauthorized("invalid token")
			}
			return apperrors.MapError(err)
		}
		principal.Participant = participant
	case domain.PrincipalKindMember, domain.PrincipalKindCommunity:
		member, err := m.members.GetByUsername(c.UserContext(), claims.Subject)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewUnauthorized("invalid token")
			}
			return apperrors.MapError(err)
		}
		if !member.Active {
			return apperrors.NewUnauthorized("invalid token")
		}
		principal.Member = member
	default:
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// Optional authenticates when a bearer token is present and falls through
// anonymously when it is not. Invalid tokens are still rejected.
func (m *AuthMiddleware) Optional(c *fiber.Ctx) error {
	if c.Get("Authorization") == "" {
		return c.Next()
	}
	return m.Handle(c)
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RequireKind ensures the principal's kind is one of the allowed set.
func RequireKind(allowed ...domain.PrincipalKind) fiber.Handler {
	allowedSet := make(map[domain.PrincipalKind]struct{}, len(allowed))
	for _, kind := range allowed {
		allowedSet[kind] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Kind]; !exists {
			return apperrors.NewForbidden("forbidden")
		}
		return c.Next()
	}
}
