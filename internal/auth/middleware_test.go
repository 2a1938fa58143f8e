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
	"github.com/spec-kit/campus-hub/internal/repository"
	apperrors "github.com/spec-kit/campus-hub/pkg/util/errorutil"
)

type stubParticipantRepo struct {
	repository.ParticipantRepository
	participant *domain.Participant
}

func (s *stubParticipantRepo) GetByRegno(_ context.Context, regno string) (*domain.Participant, error) {
	if s.participant != nil && s.participant.Regno == regno {
		return s.participant, nil
	}
	return nil, pgx.ErrNoRows
}

type stubMemberRepo struct {
	repository.MemberRepository
	member *domain.Member
}

func (s *stubMemberRepo) GetByUsername(_ context.Context, username string) (*domain.Member, error) {
	if s.member != nil && s.member.Username == username {
		return s.member, nil
	}
	return nil, pgx.ErrNoRows
}

func newMiddlewareTestApp(tm *TokenManager, participants repository.ParticipantRepository, members repository.MemberRepository) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).SendString(domainErr.Message)
		},
	})
	mw := NewAuthMiddleware(tm, participants, members)
	app.Get("/any", mw.Handle, func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/members-only", mw.Handle, RequireKind(domain.PrincipalKindMember), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestMiddlewareRejectsRefreshPurposeToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 0, 0)
	participant := &domain.Participant{ID: "p1", Regno: "CS2021001", Status: domain.ParticipantStatusActive}
	app := newMiddlewareTestApp(tm, &stubParticipantRepo{participant: participant}, &stubMemberRepo{})

	refresh, _, err := tm.IssueRefresh("CS2021001", domain.PrincipalKindParticipant)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/any", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	access, _, err := tm.IssueAccess("CS2021001", domain.PrincipalKindParticipant)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/any", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMiddlewareRejectsWrongKind(t *testing.T) {
	tm := NewTokenManager(testSecret, 0, 0)
	participant := &domain.Participant{ID: "p1", Regno: "CS2021001", Status: domain.ParticipantStatusActive}
	app := newMiddlewareTestApp(tm, &stubParticipantRepo{participant: participant}, &stubMemberRepo{})

	access, _, err := tm.IssueAccess("CS2021001", domain.PrincipalKindParticipant)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/members-only", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestMiddlewareRejectsInactiveMember(t *testing.T) {
	tm := NewTokenManager(testSecret, 0, 0)
	member := &domain.Member{ID: "m1", Username: "orgadmin", Active: false}
	app := newMiddlewareTestApp(tm, &stubParticipantRepo{}, &stubMemberRepo{member: member})

	access, _, err := tm.IssueAccess("orgadmin", domain.PrincipalKindMember)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/members-only", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareRejectsMissingOrMalformedHeader(t *testing.T) {
	tm := NewTokenManager(testSecret, 0, 0)
	app := newMiddlewareTestApp(tm, &stubParticipantRepo{}, &stubMemberRepo{})

	resp, err := app.Test(httptest.NewRequest("GET", "/any", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/any", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
