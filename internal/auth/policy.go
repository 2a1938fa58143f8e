package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/campus-hub/internal/domain"
	"github.com/spec-kit/campus-hub/internal/repository"
	apperrors "github.com/spec-kit/campus-hub/pkg/util/errorutil"
)

// PolicyResolver resolves admin policy documents for authenticated members.
type PolicyResolver struct {
	admins repository.AdminRepository
}

// NewPolicyResolver constructs the resolver.
func NewPolicyResolver(admins repository.AdminRepository) *PolicyResolver {
	return &PolicyResolver{admins: admins}
}

// Resolve fetches the admin row for a member. A missing row is not an error;
// it resolves to nil with no capabilities.
func (r *PolicyResolver) Resolve(ctx context.Context, memberID string) (*domain.Admin, bool, error) {
	admin, err := r.admins.GetByMemberID(ctx, memberID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	return admin, admin.Policy.IsSuperAdmin(), nil
}

// RequireCapability gates a route on a named policy flag. Denials are uniform;
// the response never names the missing capability.
func (r *PolicyResolver) RequireCapability(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Member == nil {
			return apperrors.NewForbidden("forbidden")
		}
		admin, _, err := r.Resolve(c.UserContext(), principal.Member.ID)
		if err != nil {
			return apperrors.MapError(err)
		}
		if admin == nil || !admin.Policy.Allows(name) {
			return apperrors.NewForbidden("forbidden")
		}
		return c.Next()
	}
}

// RequireSuperadmin gates a route on the superadmin override.
func (r *PolicyResolver) RequireSuperadmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Member == nil {
			return apperrors.NewForbidden("forbidden")
		}
		_, isSuper, err := r.Resolve(c.UserContext(), principal.Member.ID)
		if err != nil {
			return apperrors.MapError(err)
		}
		if !isSuper {
			return apperrors.NewForbidden("forbidden")
		}
		return c.Next()
	}
}
