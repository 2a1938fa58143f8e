package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/campus-hub/internal/domain"
)

// AdminRepository manages admin rows and their policy documents.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	UpdatePolicy(ctx context.Context, admin *domain.Admin) error
	Delete(ctx context.Context, memberID string) error
	GetByMemberID(ctx context.Context, memberID string) (*domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
}

// policyCacheTTL bounds staleness between a policy mutation on one instance
// and cache expiry on another.
const policyCacheTTL = 60 * time.Second

type adminRepository struct {
	pool  *pgxpool.Pool
	cache *redis.Client
}

// NewAdminRepository returns a Postgres-backed implementation with a Redis
// read-through cache keyed by member ID. Cache entries are dropped on every
// policy mutation.
func NewAdminRepository(pool *pgxpool.Pool, cache *redis.Client) AdminRepository {
	return &adminRepository{pool: pool, cache: cache}
}

func policyCacheKey(memberID string) string {
	return "admin:policy:" + memberID
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	const query = `
        INSERT INTO admins (member_id, policy)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`

	if err := r.pool.QueryRow(ctx, query, admin.MemberID, admin.Policy).
		Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt); err != nil {
		return err
	}
	r.invalidate(ctx, admin.MemberID)
	return nil
}

func (r *adminRepository) UpdatePolicy(ctx context.Context, admin *domain.Admin) error {
	const query = `UPDATE admins SET policy=$1, updated_at=NOW() WHERE member_id=$2`

	cmd, err := r.pool.Exec(ctx, query, admin.Policy, admin.MemberID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	r.invalidate(ctx, admin.MemberID)
	return nil
}

func (r *adminRepository) Delete(ctx context.Context, memberID string) error {
	const query = `DELETE FROM admins WHERE member_id=$1`

	cmd, err := r.pool.Exec(ctx, query, memberID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	r.invalidate(ctx, memberID)
	return nil
}

func (r *adminRepository) GetByMemberID(ctx context.Context, memberID string) (*domain.Admin, error) {
	if admin, ok := r.cached(ctx, memberID); ok {
		return admin, nil
	}

	const query = `SELECT id, member_id, policy, created_at, updated_at FROM admins WHERE member_id=$1`

	var admin domain.Admin
	if err := r.pool.QueryRow(ctx, query, memberID).Scan(
		&admin.ID,
		&admin.MemberID,
		&admin.Policy,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	); err != nil {
		return nil, err
	}

	r.store(ctx, &admin)
	return &admin, nil
}

func (r *adminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	const query = `SELECT id, member_id, policy, created_at, updated_at FROM admins ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	admins := make([]domain.Admin, 0)
	for rows.Next() {
		var admin domain.Admin
		if err := rows.Scan(&admin.ID, &admin.MemberID, &admin.Policy, &admin.CreatedAt, &admin.UpdatedAt); err != nil {
			return nil, err
		}
		admins = append(admins, admin)
	}
	return admins, rows.Err()
}

func (r *adminRepository) cached(ctx context.Context, memberID string) (*domain.Admin, bool) {
	if r.cache == nil {
		return nil, false
	}
	raw, err := r.cache.Get(ctx, policyCacheKey(memberID)).Bytes()
	if err != nil {
		return nil, false
	}
	var admin domain.Admin
	if err := json.Unmarshal(raw, &admin); err != nil {
		return nil, false
	}
	return &admin, true
}

func (r *adminRepository) store(ctx context.Context, admin *domain.Admin) {
	if r.cache == nil {
		return
	}
	raw, err := json.Marshal(admin)
	if err != nil {
		return
	}
	_ = r.cache.Set(ctx, policyCacheKey(admin.MemberID), raw, policyCacheTTL).Err()
}

func (r *adminRepository) invalidate(ctx context.Context, memberID string) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Del(ctx, policyCacheKey(memberID)).Err()
}
