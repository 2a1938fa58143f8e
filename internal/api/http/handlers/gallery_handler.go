package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-hub/internal/api/dto"
	"github.com/spec-kit/campus-hub/internal/auth"
	"github.com/spec-kit/campus-hub/internal/service"
	apperrors "github.com/spec-kit/campus-hub/pkg/util/errorutil"
)

// GalleryHandler exposes gallery upload/download endpoints.
type GalleryHandler struct {
	gallery *service.GalleryService
}

// NewGalleryHandler constructs handler.
func NewGalleryHandler(galleryService *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{gallery: galleryService}
}

// BeginUpload handles POST /gallery/items.
func (h *GalleryHandler) BeginUpload(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Member == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.GalleryUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	item, uploadURL, err := h.gallery.BeginUpload(c.UserContext(), principal.Member.ID, service.GalleryUploadInput{
		Title:     req.Title,
		FileName:  req.FileName,
		MimeType:  req.MimeType,
		SizeBytes: req.SizeBytes,
		EventID:   req.EventID,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.GalleryUploadResponse{
			Item:      dto.NewGalleryItemResponse(item),
			UploadURL: uploadURL,
		},
	})
}

// Download handles GET /gallery/items/:id/download.
func (h *GalleryHandler) Download(c *fiber.Ctx) error {
	item, downloadURL, err := h.gallery.DownloadURL(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.GalleryDownloadResponse{
			Item:        dto.NewGalleryItemResponse(item),
			DownloadURL: downloadURL,
		},
	})
}

// List handles GET /gallery/items.
func (h *GalleryHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	var eventID *string
	if id := c.Query("event_id"); id != "" {
		eventID = &id
	}

	items, err := h.gallery.ListItems(c.UserContext(), eventID, limit, offset)
	if err != nil {
		return err
	}

	out := make([]dto.GalleryItemResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewGalleryItemResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Delete handles DELETE /gallery/items/:id.
func (h *GalleryHandler) Delete(c *fiber.Ctx) error {
	if err := h.gallery.DeleteItem(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}
