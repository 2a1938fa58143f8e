package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campus-hub/internal/domain"
)

// ParticipantRepository defines persistence access for participants.
type ParticipantRepository interface {
	Create(ctx context.Context, participant *domain.Participant) error
	Update(ctx context.Context, participant *domain.Participant) error
	UpdateCredentials(ctx context.Context, id string, creds *domain.Credentials) error
	GetByID(ctx context.Context, id string) (*domain.Participant, error)
	GetByRegno(ctx context.Context, regno string) (*domain.Participant, error)
	GetByProfileName(ctx context.Context, profileName string) (*domain.Participant, error)
	GetByEmail(ctx context.Context, email string) (*domain.Participant, error)
	GetByVerificationTokenHash(ctx context.Context, hash string) (*domain.Participant, error)
	GetByResetTokenHash(ctx context.Context, hash string) (*domain.Participant, error)
	RegnoExists(ctx context.Context, normalized, excludeID string) (bool, error)
	ProfileNameExists(ctx context.Context, normalized, excludeID string) (bool, error)
}

const participantColumns = `
        id, regno, profile_name, name, email, college, team_id, status,
        password_hash,
        email_verification_token_hash, email_verification_expires_at, email_verification_sent_at, email_verified_at,
        password_reset_token_hash, password_reset_expires_at, password_reset_sent_at,
        created_at, updated_at`

type participantRepository struct {
	pool *pgxpool.Pool
}

// NewParticipantRepository returns a Postgres-backed implementation.
func NewParticipantRepository(pool *pgxpool.Pool) ParticipantRepository {
	return &participantRepository{pool: pool}
}

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	const query = `
        INSERT INTO participants (regno, profile_name, name, email, college, team_id, status, password_hash)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		p.Regno,
		p.ProfileName,
		p.Name,
		p.Email,
		p.College,
		p.TeamID,
		p.Status,
		p.Credentials.PasswordHash,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *participantRepository) Update(ctx context.Context, p *domain.Participant) error {
	const query = `
        UPDATE participants SET regno=$1, profile_name=$2, name=$3, email=$4, college=$5, team_id=$6, status=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		p.Regno,
		p.ProfileName,
		p.Name,
		p.Email,
		p.College,
		p.TeamID,
		p.Status,
		p.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *participantRepository) UpdateCredentials(ctx context.Context, id string, creds *domain.Credentials) error {
	const query = `
        UPDATE participants SET password_hash=$1,
            email_verification_token_hash=$2, email_verification_expires_at=$3, email_verification_sent_at=$4, email_verified_at=$5,
            password_reset_token_hash=$6, password_reset_expires_at=$7, password_reset_sent_at=$8,
            updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		creds.PasswordHash,
		creds.VerificationTokenHash,
		creds.VerificationExpiresAt,
		creds.VerificationSentAt,
		creds.EmailVerifiedAt,
		creds.ResetTokenHash,
		creds.ResetExpiresAt,
		creds.ResetSentAt,
		id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *participantRepository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	return r.getOne(ctx, `SELECT `+participantColumns+` FROM participants WHERE id=$1`, id)
}

func (r *participantRepository) GetByRegno(ctx context.Context, regno string) (*domain.Participant, error) {
	return r.getOne(ctx, `SELECT `+participantColumns+` FROM participants WHERE LOWER(TRIM(regno))=LOWER(TRIM($1))`, regno)
}

func (r *participantRepository) GetByProfileName(ctx context.Context, profileName string) (*domain.Participant, error) {
	return r.getOne(ctx, `SELECT `+participantColumns+` FROM participants WHERE LOWER(TRIM(profile_name))=LOWER(TRIM($1))`, profileName)
}

func (r *participantRepository) GetByEmail(ctx context.Context, email string) (*domain.Participant, error) {
	return r.getOne(ctx, `SELECT `+participantColumns+` FROM participants WHERE LOWER(email)=LOWER($1)`, email)
}

// GetByVerificationTokenHash only matches unexpired tokens; expired and unknown
// hashes are indistinguishable to the caller.
func (r *participantRepository) GetByVerificationTokenHash(ctx context.Context, hash string) (*domain.Participant, error) {
	return r.getOne(ctx, `SELECT `+participantColumns+` FROM participants
        WHERE email_verification_token_hash=$1 AND email_verification_expires_at > NOW()`, hash)
}

func (r *participantRepository) GetByResetTokenHash(ctx context.Context, hash string) (*domain.Participant, error) {
	return r.getOne(ctx, `SELECT `+participantColumns+` FROM participants
        WHERE password_reset_token_hash=$1 AND password_reset_expires_at > NOW()`, hash)
}

func (r *participantRepository) RegnoExists(ctx context.Context, normalized, excludeID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM participants WHERE LOWER(TRIM(regno))=$1 AND id::text<>$2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, normalized, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *participantRepository) ProfileNameExists(ctx context.Context, normalized, excludeID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM participants WHERE LOWER(TRIM(profile_name))=$1 AND id::text<>$2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, normalized, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *participantRepository) getOne(ctx context.Context, query string, arg any) (*domain.Participant, error) {
	var p domain.Participant
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&p.ID,
		&p.Regno,
		&p.ProfileName,
		&p.Name,
		&p.Email,
		&p.College,
		&p.TeamID,
		&p.Status,
		&p.Credentials.PasswordHash,
		&p.Credentials.VerificationTokenHash,
		&p.Credentials.VerificationExpiresAt,
		&p.Credentials.VerificationSentAt,
		&p.Credentials.EmailVerifiedAt,
		&p.Credentials.ResetTokenHash,
		&p.Credentials.ResetExpiresAt,
		&p.Credentials.ResetSentAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
