package domain

import "time"

// GalleryItem is a file uploaded to object storage, referenced by its key.
// The bytes themselves never pass through this service; clients upload and
// download via presigned URLs.
type GalleryItem struct {
	ID         string
	Title      string
	StorageKey string
	FileName   string
	MimeType   string
	SizeBytes  int64
	EventID    *string
	UploadedBy string
	CreatedAt  time.Time
}
