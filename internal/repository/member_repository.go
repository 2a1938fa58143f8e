package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campus-hub/internal/domain"
)

// MemberRepository defines persistence access for organization members.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	Update(ctx context.Context, member *domain.Member) error
	UpdateCredentials(ctx context.Context, id string, creds *domain.Credentials) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	GetByUsername(ctx context.Context, username string) (*domain.Member, error)
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	GetByVerificationTokenHash(ctx context.Context, hash string) (*domain.Member, error)
	GetByResetTokenHash(ctx context.Context, hash string) (*domain.Member, error)
	List(ctx context.Context, limit, offset int) ([]domain.Member, error)
}

const memberColumns = `
        id, username, name, email, designation, active,
        password_hash,
        email_verification_token_hash, email_verification_expires_at, email_verification_sent_at, email_verified_at,
        password_reset_token_hash, password_reset_expires_at, password_reset_sent_at,
        created_at, updated_at`

type memberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository returns a Postgres-backed implementation.
func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &memberRepository{pool: pool}
}

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	const query = `
        INSERT INTO members (username, name, email, designation, active, password_hash)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		m.Username,
		m.Name,
		m.Email,
		m.Designation,
		m.Active,
		m.Credentials.PasswordHash,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *memberRepository) Update(ctx context.Context, m *domain.Member) error {
	const query = `
        UPDATE members SET username=$1, name=$2, email=$3, designation=$4, active=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		m.Username,
		m.Name,
		m.Email,
		m.Designation,
		m.Active,
		m.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *memberRepository) UpdateCredentials(ctx context.Context, id string, creds *domain.Credentials) error {
	const query = `
        UPDATE members SET password_hash=$1,
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

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	return r.getOne(ctx, `SELECT `+memberColumns+` FROM members WHERE id=$1`, id)
}

func (r *memberRepository) GetByUsername(ctx context.Context, username string) (*domain.Member, error) {
	return r.getOne(ctx, `SELECT `+memberColumns+` FROM members WHERE LOWER(TRIM(username))=LOWER(TRIM($1))`, username)
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	return r.getOne(ctx, `SELECT `+memberColumns+` FROM members WHERE LOWER(email)=LOWER($1)`, email)
}

func (r *memberRepository) GetByVerificationTokenHash(ctx context.Context, hash string) (*domain.Member, error) {
	return r.getOne(ctx, `SELECT `+memberColumns+` FROM members
        WHERE email_verification_token_hash=$1 AND email_verification_expires_at > NOW()`, hash)
}

func (r *memberRepository) GetByResetTokenHash(ctx context.Context, hash string) (*domain.Member, error) {
	return r.getOne(ctx, `SELECT `+memberColumns+` FROM members
        WHERE password_reset_token_hash=$1 AND password_reset_expires_at > NOW()`, hash)
}

func (r *memberRepository) List(ctx context.Context, limit, offset int) ([]domain.Member, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	const query = `SELECT ` + memberColumns + ` FROM members ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]domain.Member, 0)
	for rows.Next() {
		var m domain.Member
		if err := scanMember(rows, &m); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *memberRepository) getOne(ctx context.Context, query string, arg any) (*domain.Member, error) {
	var m domain.Member
	if err := scanMember(r.pool.QueryRow(ctx, query, arg), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func scanMember(row pgx.Row, m *domain.Member) error {
	return row.Scan(
		&m.ID,
		&m.Username,
		&m.Name,
		&m.Email,
		&m.Designation,
		&m.Active,
		&m.Credentials.PasswordHash,
		&m.Credentials.VerificationTokenHash,
		&m.Credentials.VerificationExpiresAt,
		&m.Credentials.VerificationSentAt,
		&m.Credentials.EmailVerifiedAt,
		&m.Credentials.ResetTokenHash,
		&m.Credentials.ResetExpiresAt,
		&m.Credentials.ResetSentAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
}
