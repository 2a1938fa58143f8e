package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campus-hub/internal/domain"
)

// ScoreRepository manages per-round participant scores.
type ScoreRepository interface {
	Upsert(ctx context.Context, score *domain.Score) error
	GetByRoundAndParticipant(ctx context.Context, roundID, participantID string) (*domain.Score, error)
	ListByRound(ctx context.Context, roundID string) ([]domain.Score, error)
	Leaderboard(ctx context.Context, eventID string) ([]domain.LeaderboardEntry, error)
}

type scoreRepository struct {
	pool *pgxpool.Pool
}

// NewScoreRepository constructs repository.
func NewScoreRepository(pool *pgxpool.Pool) ScoreRepository {
	return &scoreRepository{pool: pool}
}

// Upsert records a score, replacing any earlier score for the same round and
// participant. Last writer wins.
func (r *scoreRepository) Upsert(ctx context.Context, score *domain.Score) error {
	const query = `
        INSERT INTO scores (round_id, participant_id, points, remarks, scored_by)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (round_id, participant_id)
        DO UPDATE SET points=EXCLUDED.points, remarks=EXCLUDED.remarks, scored_by=EXCLUDED.scored_by, updated_at=NOW()
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		score.RoundID,
		score.ParticipantID,
		score.Points,
		score.Remarks,
		score.ScoredBy,
	).Scan(&score.ID, &score.CreatedAt, &score.UpdatedAt)
}

func (r *scoreRepository) GetByRoundAndParticipant(ctx context.Context, roundID, participantID string) (*domain.Score, error) {
	const query = `
        SELECT id, round_id, participant_id, points, remarks, scored_by, created_at, updated_at
        FROM scores WHERE round_id=$1 AND participant_id=$2`
	var score domain.Score
	if err := r.pool.QueryRow(ctx, query, roundID, participantID).Scan(
		&score.ID,
		&score.RoundID,
		&score.ParticipantID,
		&score.Points,
		&score.Remarks,
		&score.ScoredBy,
		&score.CreatedAt,
		&score.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *scoreRepository) ListByRound(ctx context.Context, roundID string) ([]domain.Score, error) {
	const query = `
        SELECT id, round_id, participant_id, points, remarks, scored_by, created_at, updated_at
        FROM scores WHERE round_id=$1 ORDER BY points DESC`

	rows, err := r.pool.Query(ctx, query, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]domain.Score, 0)
	for rows.Next() {
		var score domain.Score
		if err := rows.Scan(
			&score.ID,
			&score.RoundID,
			&score.ParticipantID,
			&score.Points,
			&score.Remarks,
			&score.ScoredBy,
			&score.CreatedAt,
			&score.UpdatedAt,
		); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

func (r *scoreRepository) Leaderboard(ctx context.Context, eventID string) ([]domain.LeaderboardEntry, error) {
	const query = `
        SELECT s.participant_id, p.profile_name, SUM(s.points)::int AS total, COUNT(s.id)::int AS rounds_scored
        FROM scores s
        JOIN rounds r ON r.id = s.round_id
        JOIN participants p ON p.id = s.participant_id
        WHERE r.event_id = $1
        GROUP BY s.participant_id, p.profile_name
        ORDER BY total DESC, p.profile_name`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.LeaderboardEntry, 0)
	for rows.Next() {
		var entry domain.LeaderboardEntry
		if err := rows.Scan(
			&entry.ParticipantID,
			&entry.ProfileName,
			&entry.TotalPoints,
			&entry.RoundsScored,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
