package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-hub/internal/auth"
	"github.com/spec-kit/campus-hub/internal/domain"
	apperrors "github.com/spec-kit/campus-hub/pkg/util/errorutil"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeParticipantRepo, *fakeMemberRepo, *fakeMailer) {
	t.Helper()
	participants := newFakeParticipantRepo()
	members := newFakeMemberRepo()
	mailer := &fakeMailer{}
	cfg := testConfig()

	credentials := NewCredentialService(cfg, CredentialDependencies{
		ParticipantRepo: participants,
		MemberRepo:      members,
		Mailer:          mailer,
		Logger:          zap.NewNop(),
	})
	svc := NewAuthService(cfg, AuthDependencies{
		ParticipantRepo: participants,
		MemberRepo:      members,
		Credentials:     credentials,
		Identity:        NewIdentityService(participants),
	})
	return svc, participants, members, mailer
}

func registerInput() ParticipantRegisterInput {
	return ParticipantRegisterInput{
		Regno:       "CS2021001",
		ProfileName: "neo",
		Name:        "Neo",
		Email:       "neo@example.com",
		College:     "Zion Tech",
		Password:    "follow the white rabbit",
	}
}

func TestRegisterParticipantIssuesVerificationAndTokens(t *testing.T) {
	svc, participants, _, mailer := newAuthFixture(t)

	participant, pair, err := svc.RegisterParticipant(context.Background(), registerInput())
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	require.Len(t, mailer.sent, 1)

	stored, err := participants.GetByID(context.Background(), participant.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "follow the white rabbit", stored.Credentials.PasswordHash)
	assert.True(t, auth.VerifyPassword("follow the white rabbit", stored.Credentials.PasswordHash))
	assert.NotNil(t, stored.Credentials.VerificationTokenHash)
}

func TestRegisterParticipantRejectsDuplicates(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, _, err := svc.RegisterParticipant(context.Background(), registerInput())
	require.NoError(t, err)

	dup := registerInput()
	dup.Email = "other@example.com"
	dup.ProfileName = "morpheus"
	_, _, err = svc.RegisterParticipant(context.Background(), dup)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestRegisterParticipantRejectsCrossNamespaceCollision(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, _, err := svc.RegisterParticipant(context.Background(), registerInput())
	require.NoError(t, err)

	clash := registerInput()
	clash.Regno = "NEO"
	clash.ProfileName = "morpheus"
	clash.Email = "other@example.com"
	_, _, err = svc.RegisterParticipant(context.Background(), clash)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestLoginParticipantByEitherHandle(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	_, _, err := svc.RegisterParticipant(context.Background(), registerInput())
	require.NoError(t, err)

	_, pair, err := svc.LoginParticipant(context.Background(), "CS2021001", "follow the white rabbit")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	_, pair, err = svc.LoginParticipant(context.Background(), "neo", "follow the white rabbit")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc, participants, _, _ := newAuthFixture(t)
	_, _, err := svc.RegisterParticipant(context.Background(), registerInput())
	require.NoError(t, err)

	_, _, wrongPassword := svc.LoginParticipant(context.Background(), "neo", "wrong")
	_, _, unknownHandle := svc.LoginParticipant(context.Background(), "nobody", "follow the white rabbit")

	for _, p := range participants.byID {
		p.Status = domain.ParticipantStatusSuspended
	}
	_, _, suspended := svc.LoginParticipant(context.Background(), "neo", "follow the white rabbit")

	// Wrong password, unknown handle, and suspended account all read the same.
	for _, err := range []error{wrongPassword, unknownHandle, suspended} {
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
		assert.Equal(t, "invalid credentials", domainErr.Message)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	_, pair, err := svc.RegisterParticipant(context.Background(), registerInput())
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), pair.AccessToken)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)

	fresh, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
}

func TestRefreshRejectsDeactivatedMember(t *testing.T) {
	svc, _, members, _ := newAuthFixture(t)

	hash, err := auth.HashPassword("a long enough password", testConfig().Auth.BcryptCost)
	require.NoError(t, err)
	m := &domain.Member{
		Username:    "orgadmin",
		Email:       "admin@example.com",
		Active:      true,
		Credentials: domain.Credentials{PasswordHash: hash},
	}
	require.NoError(t, members.Create(context.Background(), m))

	_, pair, err := svc.LoginMember(context.Background(), "orgadmin", "a long enough password")
	require.NoError(t, err)

	members.byID[m.ID].Active = false
	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	require.Error(t, err)
}

func TestRequestFlowsHideUnknownEmails(t *testing.T) {
	svc, _, _, mailer := newAuthFixture(t)

	outcome, err := svc.RequestPasswordReset(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSent, outcome)
	assert.Empty(t, mailer.sent, "unknown email must not trigger a send")
}

// A throttled known address must look identical to an unknown one from the
// outside, or the cooldown outcome leaks which emails have accounts.
func TestThrottledOutcomeMasksAsSentExternally(t *testing.T) {
	svc, _, _, mailer := newAuthFixture(t)
	_, _, err := svc.RegisterParticipant(context.Background(), registerInput())
	require.NoError(t, err)
	mailer.sent = nil

	outcome, err := svc.RequestVerification(context.Background(), "neo@example.com")
	require.NoError(t, err)
	require.Equal(t, OutcomeCooldown, outcome, "registration just mailed a token")

	unknown, err := svc.RequestVerification(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Equal(t, unknown.Public(), outcome.Public())
	assert.Equal(t, OutcomeSent, outcome.Public())

	assert.Equal(t, OutcomeSent, OutcomeSent.Public())
	assert.Equal(t, OutcomeMissingEmail, OutcomeMissingEmail.Public())
}

func TestConfirmPasswordResetRoundTrip(t *testing.T) {
	svc, _, _, mailer := newAuthFixture(t)
	_, _, err := svc.RegisterParticipant(context.Background(), registerInput())
	require.NoError(t, err)
	mailer.sent = nil

	outcome, err := svc.RequestPasswordReset(context.Background(), "neo@example.com")
	require.NoError(t, err)
	require.Equal(t, OutcomeSent, outcome)
	require.Len(t, mailer.sent, 1)
	raw := tokenFromMessage(mailer.sent[0])

	require.NoError(t, svc.ConfirmPasswordReset(context.Background(), raw, "there is no spoon"))

	_, _, err = svc.LoginParticipant(context.Background(), "neo", "there is no spoon")
	require.NoError(t, err)
	_, _, err = svc.LoginParticipant(context.Background(), "neo", "follow the white rabbit")
	require.Error(t, err)

	// The token was consumed by the first confirmation.
	err = svc.ConfirmPasswordReset(context.Background(), raw, "another password")
	require.Error(t, err)
}

func TestConfirmVerificationMarksEmailVerified(t *testing.T) {
	svc, participants, _, mailer := newAuthFixture(t)
	participant, _, err := svc.RegisterParticipant(context.Background(), registerInput())
	require.NoError(t, err)
	raw := tokenFromMessage(mailer.sent[0])

	verified, err := svc.ConfirmVerification(context.Background(), raw)
	require.NoError(t, err)
	assert.True(t, verified)

	stored, err := participants.GetByID(context.Background(), participant.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.Credentials.EmailVerifiedAt)
}

func TestCommunityTokenCarriesCommunityKind(t *testing.T) {
	svc, _, members, _ := newAuthFixture(t)
	m := &domain.Member{Username: "orgadmin", Email: "admin@example.com", Active: true}
	require.NoError(t, members.Create(context.Background(), m))

	token, _, err := svc.IssueCommunityToken(context.Background(), m)
	require.NoError(t, err)

	claims, err := svc.TokenManager().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, domain.PrincipalKindCommunity, claims.Kind)
	assert.Equal(t, domain.TokenPurposeAccess, claims.Purpose)
	assert.Equal(t, "orgadmin", claims.Subject)
}
