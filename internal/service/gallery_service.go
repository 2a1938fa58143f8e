package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/spec-kit/campus-hub/internal/config"
	"github.com/spec-kit/campus-hub/internal/domain"
	"github.com/spec-kit/campus-hub/internal/repository"
	apperrors "github.com/spec-kit/campus-hub/pkg/util/errorutil"
)

// GalleryService hands out presigned object-storage URLs and tracks item
// metadata. File bytes go straight from the client to the bucket.
type GalleryService struct {
	items      repository.GalleryRepository
	presign    *s3.PresignClient
	bucket     string
	presignTTL time.Duration
}

// GalleryUploadInput describes an upload request.
type GalleryUploadInput struct {
	Title     string
	FileName  string
	MimeType  string
	SizeBytes int64
	EventID   *string
}

// NewGalleryService builds the service, connecting to any S3-compatible
// endpoint (MinIO in development).
func NewGalleryService(ctx context.Context, cfg config.StorageConfig, items repository.GalleryRepository) (*GalleryService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &GalleryService{
		items:      items,
		presign:    s3.NewPresignClient(client),
		bucket:     cfg.Bucket,
		presignTTL: cfg.PresignTTL(),
	}, nil
}

// BeginUpload allocates a storage key, persists item metadata, and returns a
// presigned PUT URL the client uploads to directly.
func (s *GalleryService) BeginUpload(ctx context.Context, uploaderID string, input GalleryUploadInput) (*domain.GalleryItem, string, error) {
	if strings.TrimSpace(input.FileName) == "" {
		return nil, "", apperrors.NewValidationError("file_name required", nil)
	}

	key := fmt.Sprintf("gallery/%s", uuid.NewString())
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.presignTTL))
	if err != nil {
		return nil, "", err
	}

	item := &domain.GalleryItem{
		Title:      strings.TrimSpace(input.Title),
		StorageKey: key,
		FileName:   input.FileName,
		MimeType:   input.MimeType,
		SizeBytes:  input.SizeBytes,
		EventID:    input.EventID,
		UploadedBy: uploaderID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, "", err
	}
	return item, req.URL, nil
}

// DownloadURL returns a presigned GET URL for an item.
func (s *GalleryService) DownloadURL(ctx context.Context, id string) (*domain.GalleryItem, string, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(item.StorageKey),
	}, s3.WithPresignExpires(s.presignTTL))
	if err != nil {
		return nil, "", err
	}
	return item, req.URL, nil
}

// ListItems returns gallery metadata, optionally scoped to one event.
func (s *GalleryService) ListItems(ctx context.Context, eventID *string, limit, offset int) ([]domain.GalleryItem, error) {
	return s.items.List(ctx, eventID, limit, offset)
}

// DeleteItem removes item metadata. The object itself is left for a storage
// lifecycle rule to reap.
func (s *GalleryService) DeleteItem(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}
