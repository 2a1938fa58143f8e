package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-hub/internal/config"
	"github.com/spec-kit/campus-hub/internal/domain"
	"github.com/spec-kit/campus-hub/internal/mail"
	"github.com/spec-kit/campus-hub/internal/repository"
)

// IssueOutcome distinguishes expected negative results of token issuance from
// faults. Throttled and missing-email calls are not errors.
type IssueOutcome string

const (
	OutcomeSent         IssueOutcome = "sent"
	OutcomeCooldown     IssueOutcome = "cooldown"
	OutcomeMissingEmail IssueOutcome = "missing_email"
)

// Public is the outcome reported to unauthenticated callers. A cooldown
// response would reveal that the address has an account, so it reads as sent
// from the outside.
func (o IssueOutcome) Public() IssueOutcome {
	if o == OutcomeCooldown {
		return OutcomeSent
	}
	return o
}

type singleUsePurpose string

const (
	purposeVerification singleUsePurpose = "verification"
	purposeReset        singleUsePurpose = "reset"
)

// CredentialService owns every write to the verification/reset token fields.
// No other code path mutates them.
type CredentialService struct {
	participants    repository.ParticipantRepository
	members         repository.MemberRepository
	mailer          mail.Sender
	logger          *zap.Logger
	verificationTTL time.Duration
	resetTTL        time.Duration
	resendCooldown  time.Duration
	baseURL         string
}

// CredentialDependencies bundles collaborators for the credential service.
type CredentialDependencies struct {
	ParticipantRepo repository.ParticipantRepository
	MemberRepo      repository.MemberRepository
	Mailer          mail.Sender
	Logger          *zap.Logger
}

// NewCredentialService builds the service.
func NewCredentialService(cfg config.Config, deps CredentialDependencies) *CredentialService {
	return &CredentialService{
		participants:    deps.ParticipantRepo,
		members:         deps.MemberRepo,
		mailer:          deps.Mailer,
		logger:          deps.Logger,
		verificationTTL: cfg.Auth.VerificationTTL(),
		resetTTL:        cfg.Auth.PasswordResetTTL(),
		resendCooldown:  cfg.Auth.ResendCooldown(),
		baseURL:         cfg.App.BaseURL,
	}
}

// IssueVerification creates and emails an email verification token.
func (s *CredentialService) IssueVerification(ctx context.Context, holder domain.CredentialHolder) (IssueOutcome, error) {
	return s.issue(ctx, holder, purposeVerification)
}

// IssuePasswordReset creates and emails a password reset token.
func (s *CredentialService) IssuePasswordReset(ctx context.Context, holder domain.CredentialHolder) (IssueOutcome, error) {
	return s.issue(ctx, holder, purposeReset)
}

// RedeemVerification consumes a verification token and stamps the account as
// verified. Expired, consumed, and unknown tokens all return nil identically.
func (s *CredentialService) RedeemVerification(ctx context.Context, rawToken string) (domain.CredentialHolder, error) {
	return s.redeem(ctx, rawToken, purposeVerification)
}

// RedeemPasswordReset consumes a reset token and returns the matching account.
func (s *CredentialService) RedeemPasswordReset(ctx context.Context, rawToken string) (domain.CredentialHolder, error) {
	return s.redeem(ctx, rawToken, purposeReset)
}

// UpdatePassword persists a new password digest for the holder. Routed through
// this service so credential writes stay in one place.
func (s *CredentialService) UpdatePassword(ctx context.Context, holder domain.CredentialHolder, passwordHash string) error {
	holder.Creds().PasswordHash = passwordHash
	return s.saveCredentials(ctx, holder)
}

func (s *CredentialService) issue(ctx context.Context, holder domain.CredentialHolder, purpose singleUsePurpose) (IssueOutcome, error) {
	email := strings.TrimSpace(holder.EmailAddress())
	if email == "" {
		return OutcomeMissingEmail, nil
	}

	creds := holder.Creds()
	sentAt := creds.VerificationSentAt
	if purpose == purposeReset {
		sentAt = creds.ResetSentAt
	}
	// Checked before generating anything: a throttled call leaves the prior
	// pending token untouched and still redeemable within its own TTL.
	if sentAt != nil && time.Since(*sentAt) < s.resendCooldown {
		return OutcomeCooldown, nil
	}

	raw, hash, err := newOpaqueToken()
	if err != nil {
		return "", err
	}

	now := time.Now()
	switch purpose {
	case purposeVerification:
		expires := now.Add(s.verificationTTL)
		creds.VerificationTokenHash = &hash
		creds.VerificationExpiresAt = &expires
		creds.VerificationSentAt = &now
	case purposeReset:
		expires := now.Add(s.resetTTL)
		creds.ResetTokenHash = &hash
		creds.ResetExpiresAt = &expires
		creds.ResetSentAt = &now
	}

	if err := s.saveCredentials(ctx, holder); err != nil {
		return "", err
	}

	// The token is committed before dispatch. If both mail channels fail the
	// row is not rolled back: a live token the user never received, until its
	// TTL or the cooldown allows a re-request. Flagged, not fixed.
	if err := s.mailer.Send(ctx, s.composeMessage(holder, email, raw, purpose)); err != nil {
		s.logger.Error("token email dispatch failed",
			zap.String("purpose", string(purpose)),
			zap.String("account_id", holder.AccountID()),
			zap.Error(err),
		)
		return "", err
	}
	return OutcomeSent, nil
}

func (s *CredentialService) redeem(ctx context.Context, rawToken string, purpose singleUsePurpose) (domain.CredentialHolder, error) {
	raw := strings.TrimSpace(rawToken)
	if raw == "" {
		return nil, nil
	}

	holder, err := s.findByTokenHash(ctx, hashOpaqueToken(raw), purpose)
	if err != nil || holder == nil {
		return nil, err
	}

	creds := holder.Creds()
	now := time.Now()
	switch purpose {
	case purposeVerification:
		creds.VerificationTokenHash = nil
		creds.VerificationExpiresAt = nil
		creds.EmailVerifiedAt = &now
	case purposeReset:
		creds.ResetTokenHash = nil
		creds.ResetExpiresAt = nil
	}

	if err := s.saveCredentials(ctx, holder); err != nil {
		return nil, err
	}
	return holder, nil
}

// findByTokenHash checks the participant table first, then members, matching
// only unexpired hashes. The repositories collapse expired and unknown into
// pgx.ErrNoRows so neither case is distinguishable here.
func (s *CredentialService) findByTokenHash(ctx context.Context, hash string, purpose singleUsePurpose) (domain.CredentialHolder, error) {
	var (
		participant *domain.Participant
		err         error
	)
	if purpose == purposeVerification {
		participant, err = s.participants.GetByVerificationTokenHash(ctx, hash)
	} else {
		participant, err = s.participants.GetByResetTokenHash(ctx, hash)
	}
	if err == nil {
		return participant, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}

	var member *domain.Member
	if purpose == purposeVerification {
		member, err = s.members.GetByVerificationTokenHash(ctx, hash)
	} else {
		member, err = s.members.GetByResetTokenHash(ctx, hash)
	}
	if err == nil {
		return member, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}
	return nil, nil
}

func (s *CredentialService) saveCredentials(ctx context.Context, holder domain.CredentialHolder) error {
	switch h := holder.(type) {
	case *domain.Participant:
		return s.participants.UpdateCredentials(ctx, h.ID, &h.Credentials)
	case *domain.Member:
		return s.members.UpdateCredentials(ctx, h.ID, &h.Credentials)
	default:
		return fmt.Errorf("unsupported credential holder %T", holder)
	}
}

func (s *CredentialService) composeMessage(holder domain.CredentialHolder, email, rawToken string, purpose singleUsePurpose) mail.Message {
	name := holder.DisplayName()
	if purpose == purposeVerification {
		link := fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, rawToken)
		return mail.Message{
			To:      email,
			Subject: "Verify your email address",
			HTMLBody: fmt.Sprintf(
				"<p>Hi %s,</p><p>Confirm your email address by opening <a href=%q>this link</a>. The link expires in %s.</p>",
				name, link, s.verificationTTL),
			TextBody: fmt.Sprintf(
				"Hi %s,\n\nConfirm your email address by opening %s\nThe link expires in %s.\n",
				name, link, s.verificationTTL),
		}
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, rawToken)
	return mail.Message{
		To:      email,
		Subject: "Reset your password",
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>Reset your password by opening <a href=%q>this link</a>. The link expires in %s. If you did not request this, ignore this email.</p>",
			name, link, s.resetTTL),
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nReset your password by opening %s\nThe link expires in %s. If you did not request this, ignore this email.\n",
			name, link, s.resetTTL),
	}
}

// newOpaqueToken returns a high-entropy token and the hex SHA-256 digest that
// gets persisted in its place.
func newOpaqueToken() (raw, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, hashOpaqueToken(raw), nil
}

func hashOpaqueToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
