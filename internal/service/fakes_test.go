package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/campus-hub/internal/config"
	"github.com/spec-kit/campus-hub/internal/domain"
	"github.com/spec-kit/campus-hub/internal/mail"

	"golang.org/x/crypto/bcrypt"
)

func testConfig() config.Config {
	return config.Config{
		App: config.AppConfig{
			Name:    "campus-hub-test",
			BaseURL: "http://localhost:8080",
		},
		Auth: config.AuthConfig{
			JWTSecret:               "0123456789abcdef0123456789abcdef",
			AccessTokenTTLMinutes:   30,
			RefreshTokenTTLHours:    168,
			VerificationTTLHours:    24,
			PasswordResetTTLMinutes: 30,
			ResendCooldownSeconds:   300,
			BcryptCost:              bcrypt.MinCost,
		},
	}
}

type fakeParticipantRepo struct {
	byID map[string]*domain.Participant
	seq  int
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{byID: make(map[string]*domain.Participant)}
}

func (f *fakeParticipantRepo) Create(_ context.Context, p *domain.Participant) error {
	f.seq++
	p.ID = fmt.Sprintf("participant-%d", f.seq)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	stored := *p
	f.byID[p.ID] = &stored
	return nil
}

func (f *fakeParticipantRepo) Update(_ context.Context, p *domain.Participant) error {
	stored, ok := f.byID[p.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	creds := stored.Credentials
	*stored = *p
	stored.Credentials = creds
	return nil
}

func (f *fakeParticipantRepo) UpdateCredentials(_ context.Context, id string, creds *domain.Credentials) error {
	stored, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Credentials = *creds
	return nil
}

func (f *fakeParticipantRepo) GetByID(_ context.Context, id string) (*domain.Participant, error) {
	stored, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (f *fakeParticipantRepo) GetByRegno(_ context.Context, regno string) (*domain.Participant, error) {
	return f.find(func(p *domain.Participant) bool {
		return normalizeIdentifier(p.Regno) == normalizeIdentifier(regno)
	})
}

func (f *fakeParticipantRepo) GetByProfileName(_ context.Context, profileName string) (*domain.Participant, error) {
	return f.find(func(p *domain.Participant) bool {
		return normalizeIdentifier(p.ProfileName) == normalizeIdentifier(profileName)
	})
}

func (f *fakeParticipantRepo) GetByEmail(_ context.Context, email string) (*domain.Participant, error) {
	return f.find(func(p *domain.Participant) bool {
		return strings.EqualFold(p.Email, email)
	})
}

func (f *fakeParticipantRepo) GetByVerificationTokenHash(_ context.Context, hash string) (*domain.Participant, error) {
	return f.find(func(p *domain.Participant) bool {
		c := p.Credentials
		return c.VerificationTokenHash != nil && *c.VerificationTokenHash == hash &&
			c.VerificationExpiresAt != nil && c.VerificationExpiresAt.After(time.Now())
	})
}

func (f *fakeParticipantRepo) GetByResetTokenHash(_ context.Context, hash string) (*domain.Participant, error) {
	return f.find(func(p *domain.Participant) bool {
		c := p.Credentials
		return c.ResetTokenHash != nil && *c.ResetTokenHash == hash &&
			c.ResetExpiresAt != nil && c.ResetExpiresAt.After(time.Now())
	})
}

func (f *fakeParticipantRepo) RegnoExists(_ context.Context, normalized, excludeID string) (bool, error) {
	for id, p := range f.byID {
		if id != excludeID && normalizeIdentifier(p.Regno) == normalized {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeParticipantRepo) ProfileNameExists(_ context.Context, normalized, excludeID string) (bool, error) {
	for id, p := range f.byID {
		if id != excludeID && normalizeIdentifier(p.ProfileName) == normalized {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeParticipantRepo) find(match func(*domain.Participant) bool) (*domain.Participant, error) {
	for _, p := range f.byID {
		if match(p) {
			out := *p
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeMemberRepo struct {
	byID map[string]*domain.Member
	seq  int
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{byID: make(map[string]*domain.Member)}
}

func (f *fakeMemberRepo) Create(_ context.Context, m *domain.Member) error {
	f.seq++
	m.ID = fmt.Sprintf("member-%d", f.seq)
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	stored := *m
	f.byID[m.ID] = &stored
	return nil
}

func (f *fakeMemberRepo) Update(_ context.Context, m *domain.Member) error {
	stored, ok := f.byID[m.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	creds := stored.Credentials
	*stored = *m
	stored.Credentials = creds
	return nil
}

func (f *fakeMemberRepo) UpdateCredentials(_ context.Context, id string, creds *domain.Credentials) error {
	stored, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Credentials = *creds
	return nil
}

func (f *fakeMemberRepo) GetByID(_ context.Context, id string) (*domain.Member, error) {
	stored, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (f *fakeMemberRepo) GetByUsername(_ context.Context, username string) (*domain.Member, error) {
	return f.find(func(m *domain.Member) bool {
		return normalizeIdentifier(m.Username) == normalizeIdentifier(username)
	})
}

func (f *fakeMemberRepo) GetByEmail(_ context.Context, email string) (*domain.Member, error) {
	return f.find(func(m *domain.Member) bool {
		return strings.EqualFold(m.Email, email)
	})
}

func (f *fakeMemberRepo) GetByVerificationTokenHash(_ context.Context, hash string) (*domain.Member, error) {
	return f.find(func(m *domain.Member) bool {
		c := m.Credentials
		return c.VerificationTokenHash != nil && *c.VerificationTokenHash == hash &&
			c.VerificationExpiresAt != nil && c.VerificationExpiresAt.After(time.Now())
	})
}

func (f *fakeMemberRepo) GetByResetTokenHash(_ context.Context, hash string) (*domain.Member, error) {
	return f.find(func(m *domain.Member) bool {
		c := m.Credentials
		return c.ResetTokenHash != nil && *c.ResetTokenHash == hash &&
			c.ResetExpiresAt != nil && c.ResetExpiresAt.After(time.Now())
	})
}

func (f *fakeMemberRepo) List(_ context.Context, _, _ int) ([]domain.Member, error) {
	out := make([]domain.Member, 0, len(f.byID))
	for _, m := range f.byID {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMemberRepo) find(match func(*domain.Member) bool) (*domain.Member, error) {
	for _, m := range f.byID {
		if match(m) {
			out := *m
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeMailer struct {
	sent []mail.Message
	fail bool
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, msg)
	return nil
}

// tokenFromMessage pulls the raw token out of the emailed link.
func tokenFromMessage(msg mail.Message) string {
	idx := strings.Index(msg.TextBody, "token=")
	if idx < 0 {
		return ""
	}
	rest := msg.TextBody[idx+len("token="):]
	if end := strings.IndexAny(rest, " \n\t"); end >= 0 {
		return rest[:end]
	}
	return rest
}
