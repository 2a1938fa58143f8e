package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campus-hub/internal/domain"
)

// GalleryRepository manages gallery item metadata. The file bytes live in
// object storage under StorageKey.
type GalleryRepository interface {
	Create(ctx context.Context, item *domain.GalleryItem) error
	GetByID(ctx context.Context, id string) (*domain.GalleryItem, error)
	List(ctx context.Context, eventID *string, limit, offset int) ([]domain.GalleryItem, error)
	Delete(ctx context.Context, id string) error
}

type galleryRepository struct {
	pool *pgxpool.Pool
}

// NewGalleryRepository constructs repository.
func NewGalleryRepository(pool *pgxpool.Pool) GalleryRepository {
	return &galleryRepository{pool: pool}
}

func (r *galleryRepository) Create(ctx context.Context, item *domain.GalleryItem) error {
	const query = `
        INSERT INTO gallery_items (title, storage_key, file_name, mime_type, size_bytes, event_id, uploaded_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		item.Title,
		item.StorageKey,
		item.FileName,
		item.MimeType,
		item.SizeBytes,
		item.EventID,
		item.UploadedBy,
	).Scan(&item.ID, &item.CreatedAt)
}

func (r *galleryRepository) GetByID(ctx context.Context, id string) (*domain.GalleryItem, error) {
	const query = `
        SELECT id, title, storage_key, file_name, mime_type, size_bytes, event_id, uploaded_by, created_at
        FROM gallery_items WHERE id=$1`
	var item domain.GalleryItem
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Title,
		&item.StorageKey,
		&item.FileName,
		&item.MimeType,
		&item.SizeBytes,
		&item.EventID,
		&item.UploadedBy,
		&item.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *galleryRepository) List(ctx context.Context, eventID *string, limit, offset int) ([]domain.GalleryItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := `
        SELECT id, title, storage_key, file_name, mime_type, size_bytes, event_id, uploaded_by, created_at
        FROM gallery_items`
	args := []any{limit, offset}
	if eventID != nil {
		query += ` WHERE event_id=$3`
		args = append(args, *eventID)
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.GalleryItem, 0)
	for rows.Next() {
		var item domain.GalleryItem
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.StorageKey,
			&item.FileName,
			&item.MimeType,
			&item.SizeBytes,
			&item.EventID,
			&item.UploadedBy,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *galleryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM gallery_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
