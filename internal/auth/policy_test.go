package auth

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campus-hub/internal/domain"
	apperrors "github.com/spec-kit/campus-hub/pkg/util/errorutil"
)

func TestPolicyDocAllows(t *testing.T) {
	assert.False(t, domain.PolicyDoc(nil).Allows("events"))
	assert.False(t, domain.PolicyDoc{}.Allows("events"))
	assert.False(t, domain.PolicyDoc{"events": false}.Allows("events"))
	assert.True(t, domain.PolicyDoc{"events": true}.Allows("events"))

	// The superadmin override grants capabilities that are absent or even
	// explicitly false.
	super := domain.PolicyDoc{domain.CapabilitySuperAdmin: true, "events": false}
	assert.True(t, super.Allows("events"))
	assert.True(t, super.Allows("never-granted"))
	assert.True(t, super.IsSuperAdmin())

	assert.False(t, domain.PolicyDoc{domain.CapabilitySuperAdmin: false}.Allows("events"))
}

type fakeAdminRepo struct {
	byMemberID map[string]*domain.Admin
}

func (f *fakeAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	f.byMemberID[admin.MemberID] = admin
	return nil
}

func (f *fakeAdminRepo) UpdatePolicy(_ context.Context, admin *domain.Admin) error {
	if _, ok := f.byMemberID[admin.MemberID]; !ok {
		return pgx.ErrNoRows
	}
	f.byMemberID[admin.MemberID] = admin
	return nil
}

func (f *fakeAdminRepo) Delete(_ context.Context, memberID string) error {
	if _, ok := f.byMemberID[memberID]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byMemberID, memberID)
	return nil
}

func (f *fakeAdminRepo) GetByMemberID(_ context.Context, memberID string) (*domain.Admin, error) {
	admin, ok := f.byMemberID[memberID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return admin, nil
}

func (f *fakeAdminRepo) List(_ context.Context) ([]domain.Admin, error) {
	out := make([]domain.Admin, 0, len(f.byMemberID))
	for _, a := range f.byMemberID {
		out = append(out, *a)
	}
	return out, nil
}

func TestResolveMissingAdminRowMeansNoCapabilities(t *testing.T) {
	resolver := NewPolicyResolver(&fakeAdminRepo{byMemberID: map[string]*domain.Admin{}})

	admin, isSuper, err := resolver.Resolve(context.Background(), "member-1")
	require.NoError(t, err)
	assert.Nil(t, admin)
	assert.False(t, isSuper)
}

func newPolicyTestApp(resolver *PolicyResolver, member *domain.Member) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).SendString(domainErr.Message)
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		if member != nil {
			c.Locals(principalKey, &Principal{Kind: domain.PrincipalKindMember, Member: member})
		}
		return c.Next()
	})
	app.Get("/gated", resolver.RequireCapability("events"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/super", resolver.RequireSuperadmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRequireCapability(t *testing.T) {
	repo := &fakeAdminRepo{byMemberID: map[string]*domain.Admin{
		"granted":  {MemberID: "granted", Policy: domain.PolicyDoc{"events": true}},
		"denied":   {MemberID: "denied", Policy: domain.PolicyDoc{"events": false}},
		"override": {MemberID: "override", Policy: domain.PolicyDoc{domain.CapabilitySuperAdmin: true}},
	}}
	resolver := NewPolicyResolver(repo)

	cases := []struct {
		name     string
		memberID string
		status   int
	}{
		{"granted capability passes", "granted", fiber.StatusOK},
		{"explicit false denies", "denied", fiber.StatusForbidden},
		{"superadmin overrides", "override", fiber.StatusOK},
		{"no admin row denies", "nobody", fiber.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newPolicyTestApp(resolver, &domain.Member{ID: tc.memberID, Active: true})
			resp, err := app.Test(httptest.NewRequest("GET", "/gated", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestRequireSuperadmin(t *testing.T) {
	repo := &fakeAdminRepo{byMemberID: map[string]*domain.Admin{
		"override": {MemberID: "override", Policy: domain.PolicyDoc{domain.CapabilitySuperAdmin: true}},
		"granted":  {MemberID: "granted", Policy: domain.PolicyDoc{"events": true}},
	}}
	resolver := NewPolicyResolver(repo)

	app := newPolicyTestApp(resolver, &domain.Member{ID: "override", Active: true})
	resp, err := app.Test(httptest.NewRequest("GET", "/super", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// A capability grant without the override is not enough.
	app = newPolicyTestApp(resolver, &domain.Member{ID: "granted", Active: true})
	resp, err = app.Test(httptest.NewRequest("GET", "/super", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireCapabilityWithoutPrincipal(t *testing.T) {
	resolver := NewPolicyResolver(&fakeAdminRepo{byMemberID: map[string]*domain.Admin{}})
	app := newPolicyTestApp(resolver, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/gated", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
