package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campus-hub/internal/domain"
)

// EventFilter captures event listing parameters.
type EventFilter struct {
	PublishedOnly bool
	Limit         int
	Offset        int
}

// EventRepository encapsulates event and round persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, filter EventFilter) ([]domain.Event, error)
	CreateRound(ctx context.Context, round *domain.Round) error
	UpdateRound(ctx context.Context, round *domain.Round) error
	GetRoundByID(ctx context.Context, id string) (*domain.Round, error)
	ListRounds(ctx context.Context, eventID string) ([]domain.Round, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (title, description, venue, starts_at, ends_at, published, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		event.Title,
		event.Description,
		event.Venue,
		event.StartsAt,
		event.EndsAt,
		event.Published,
		event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	const query = `
        UPDATE events SET title=$1, description=$2, venue=$3, starts_at=$4, ends_at=$5, published=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		event.Title,
		event.Description,
		event.Venue,
		event.StartsAt,
		event.EndsAt,
		event.Published,
		event.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	const query = `
        SELECT id, title, description, venue, starts_at, ends_at, published, created_by, created_at, updated_at
        FROM events WHERE id=$1`
	var event domain.Event
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Venue,
		&event.StartsAt,
		&event.EndsAt,
		&event.Published,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context, filter EventFilter) ([]domain.Event, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `
        SELECT id, title, description, venue, starts_at, ends_at, published, created_by, created_at, updated_at
        FROM events`
	if filter.PublishedOnly {
		query += ` WHERE published`
	}
	query += ` ORDER BY starts_at NULLS LAST, created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.Venue,
			&event.StartsAt,
			&event.EndsAt,
			&event.Published,
			&event.CreatedBy,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *eventRepository) CreateRound(ctx context.Context, round *domain.Round) error {
	const query = `
        INSERT INTO rounds (event_id, name, sequence, max_score, starts_at, ends_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		round.EventID,
		round.Name,
		round.Sequence,
		round.MaxScore,
		round.StartsAt,
		round.EndsAt,
	).Scan(&round.ID, &round.CreatedAt, &round.UpdatedAt)
}

func (r *eventRepository) UpdateRound(ctx context.Context, round *domain.Round) error {
	const query = `
        UPDATE rounds SET name=$1, sequence=$2, max_score=$3, starts_at=$4, ends_at=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		round.Name,
		round.Sequence,
		round.MaxScore,
		round.StartsAt,
		round.EndsAt,
		round.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) GetRoundByID(ctx context.Context, id string) (*domain.Round, error) {
	const query = `
        SELECT id, event_id, name, sequence, max_score, starts_at, ends_at, created_at, updated_at
        FROM rounds WHERE id=$1`
	var round domain.Round
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&round.ID,
		&round.EventID,
		&round.Name,
		&round.Sequence,
		&round.MaxScore,
		&round.StartsAt,
		&round.EndsAt,
		&round.CreatedAt,
		&round.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &round, nil
}

func (r *eventRepository) ListRounds(ctx context.Context, eventID string) ([]domain.Round, error) {
	const query = `
        SELECT id, event_id, name, sequence, max_score, starts_at, ends_at, created_at, updated_at
        FROM rounds WHERE event_id=$1 ORDER BY sequence`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := make([]domain.Round, 0)
	for rows.Next() {
		var round domain.Round
		if err := rows.Scan(
			&round.ID,
			&round.EventID,
			&round.Name,
			&round.Sequence,
			&round.MaxScore,
			&round.StartsAt,
			&round.EndsAt,
			&round.CreatedAt,
			&round.UpdatedAt,
		); err != nil {
			return nil, err
		}
		rounds = append(rounds, round)
	}
	return rounds, rows.Err()
}
