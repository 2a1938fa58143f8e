package dto

import (
	"time"

	"github.com/spec-kit/campus-hub/internal/domain"
)

// GalleryUploadRequest payload for beginning an upload.
type GalleryUploadRequest struct {
	Title     string  `json:"title"`
	FileName  string  `json:"file_name"`
	MimeType  string  `json:"mime_type"`
	SizeBytes int64   `json:"size_bytes"`
	EventID   *string `json:"event_id"`
}

// GalleryItemResponse item metadata.
type GalleryItemResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	FileName   string    `json:"file_name"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	EventID    *string   `json:"event_id"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// GalleryUploadResponse metadata plus the presigned PUT URL.
type GalleryUploadResponse struct {
	Item      GalleryItemResponse `json:"item"`
	UploadURL string              `json:"upload_url"`
}

// GalleryDownloadResponse metadata plus the presigned GET URL.
type GalleryDownloadResponse struct {
	Item        GalleryItemResponse `json:"item"`
	DownloadURL string              `json:"download_url"`
}

// NewGalleryItemResponse maps the domain model. The storage key stays
// internal; clients only see presigned URLs.
func NewGalleryItemResponse(item *domain.GalleryItem) GalleryItemResponse {
	return GalleryItemResponse{
		ID:         item.ID,
		Title:      item.Title,
		FileName:   item.FileName,
		MimeType:   item.MimeType,
		SizeBytes:  item.SizeBytes,
		EventID:    item.EventID,
		UploadedBy: item.UploadedBy,
		CreatedAt:  item.CreatedAt,
	}
}
