// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/nailstudio/internal/imaging"
	"github.com/olegiv/nailstudio/internal/storage"
	"github.com/olegiv/nailstudio/internal/store"
)

// MaxGalleryUpload is the largest accepted gallery file.
const MaxGalleryUpload = 20 << 20

const galleryFolder = "gallery"

// galleryTypes is the declared MIME allow-list for gallery uploads.
var galleryTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/gif":  true,
}

const msgGalleryType = "Поддерживаются только JPG и GIF"

// ObjectStore is where uploaded files end up.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

// ImageUpload is one file from the admin upload form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	AltText     string
	Section     string
}

// ImageInput is the editable metadata of a stored image.
type ImageInput struct {
	AltText string
	Section string
	Order   int64
}

// GalleryService manages portfolio images.
type GalleryService struct {
	queries   *store.Queries
	objects   ObjectStore
	processor *imaging.Processor
	pages     *PageService
	policy    *bluemonday.Policy
	logger    *slog.Logger
}

// NewGalleryService creates a GalleryService. pages may be nil.
func NewGalleryService(db *sql.DB, objects ObjectStore, processor *imaging.Processor, pages *PageService, logger *slog.Logger) *GalleryService {
	if logger == nil {
		logger = slog.Default()
	}
	if processor == nil {
		processor = imaging.NewProcessor(imaging.DefaultMaxWidth, imaging.DefaultJPEGQuality)
	}
	return &GalleryService{
		queries:   store.New(db),
		objects:   objects,
		processor: processor,
		pages:     pages,
		policy:    bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

// List returns every image by position.
func (s *GalleryService) List(ctx context.Context) ([]store.Image, error) {
	images, err := s.queries.ListImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	return images, nil
}

// Get returns one image or ErrNotFound.
func (s *GalleryService) Get(ctx context.Context, id int64) (*store.Image, error) {
	img, err := s.queries.GetImageByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading image %d: %w", id, err)
	}
	return &img, nil
}

func (s *GalleryService) cleanMeta(alt, section string) (string, string, error) {
	alt = plainText(s.policy, alt)
	section = strings.ToLower(strings.TrimSpace(section))

	ve := &ValidationError{}
	if alt == "" {
		ve.add("alt_text", "Описание изображения обязательно")
	}
	if section == "" {
		ve.add("section", "Выберите раздел")
	}
	if !ve.empty() {
		return "", "", ve
	}
	return alt, section, nil
}

// checkUpload rejects files before anything touches storage or the database.
func checkUpload(up ImageUpload) ([]byte, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(up.ContentType, ";", 2)[0]))
	if !galleryTypes[ct] {
		return nil, &UploadError{Err: ErrUnsupportedType, Message: msgGalleryType}
	}
	if up.Size > MaxGalleryUpload {
		return nil, &UploadError{Err: ErrFileTooLarge, Message: tooLargeMessage(up.Size, MaxGalleryUpload)}
	}

	data, err := io.ReadAll(io.LimitReader(up.Body, MaxGalleryUpload+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > MaxGalleryUpload {
		return nil, &UploadError{Err: ErrFileTooLarge, Message: tooLargeMessage(int64(len(data)), MaxGalleryUpload)}
	}

	// The declared type comes from the browser; the bytes must agree.
	switch imaging.DetectFormat(data) {
	case imaging.FormatJPEG, imaging.FormatGIF:
		return data, nil
	default:
		return nil, &UploadError{Err: ErrUnsupportedType, Message: msgGalleryType}
	}
}

// Upload validates, normalizes and stores an image, then appends it at the
// end of the gallery.
func (s *GalleryService) Upload(ctx context.Context, up ImageUpload) (*store.Image, error) {
	alt, section, err := s.cleanMeta(up.AltText, up.Section)
	if err != nil {
		return nil, err
	}
	data, err := checkUpload(up)
	if err != nil {
		return nil, err
	}

	res, err := s.processor.Fit(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedFormat) {
			return nil, &UploadError{Err: ErrUnsupportedType, Message: msgGalleryType}
		}
		return nil, fmt.Errorf("processing image: %w", err)
	}

	key := storage.NewKey(galleryFolder, section, res.Ext())
	url, err := s.objects.Put(ctx, key, res.Data)
	if err != nil {
		return nil, fmt.Errorf("storing image: %w", err)
	}

	maxPos, err := s.queries.GetMaxImagePosition(ctx)
	if err != nil {
		s.removeObject(ctx, key)
		return nil, fmt.Errorf("reading image positions: %w", err)
	}

	now := time.Now()
	img, err := s.queries.CreateImage(ctx, store.CreateImageParams{
		AltText:    alt,
		ImageUrl:   url,
		StorageKey: key,
		Section:    section,
		Position:   maxPos + 1,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		s.removeObject(ctx, key)
		return nil, fmt.Errorf("creating image: %w", err)
	}

	s.logger.Info("image uploaded", "image_id", img.ID, "key", key, "bytes", len(res.Data),
		"width", res.Width, "height", res.Height)
	s.invalidate(ctx)
	return &img, nil
}

// Update changes alt text, section and position.
func (s *GalleryService) Update(ctx context.Context, id int64, in ImageInput) (*store.Image, error) {
	alt, section, err := s.cleanMeta(in.AltText, in.Section)
	if err != nil {
		return nil, err
	}
	if in.Order < 0 {
		return nil, &ValidationError{Fields: map[string][]string{"order": {"Порядок не может быть отрицательным"}}}
	}

	img, err := s.queries.UpdateImage(ctx, store.UpdateImageParams{
		AltText:   alt,
		Section:   section,
		Position:  in.Order,
		UpdatedAt: time.Now(),
		ID:        id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating image %d: %w", id, err)
	}
	s.invalidate(ctx)
	return &img, nil
}

// Delete removes the stored object, then the row. A storage failure is
// logged and does not keep the row.
func (s *GalleryService) Delete(ctx context.Context, id int64) error {
	img, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if img.StorageKey != "" {
		s.removeObject(ctx, img.StorageKey)
	}

	n, err := s.queries.DeleteImage(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting image %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *GalleryService) removeObject(ctx context.Context, key string) {
	if err := s.objects.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete stored object", "error", err, "key", key)
	}
}

func (s *GalleryService) invalidate(ctx context.Context) {
	if s.pages != nil {
		s.pages.Invalidate(ctx)
	}
}

func tooLargeMessage(size, limit int64) string {
	return fmt.Sprintf("Файл слишком большой: %.1fMB (макс. %dMB)", float64(size)/(1<<20), limit>>20)
}
