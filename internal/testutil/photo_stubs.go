// Package testutil provides shared test doubles and fixtures.
package testutil

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"sort"
	"time"

	"pethealth/internal/models"
)

// PhotoRepoStub is an in-memory photo repository implementation for tests.
type PhotoRepoStub struct {
	items  map[string]*models.Photo
	nextID uint
}

// NewPhotoRepoStub creates an in-memory photo repository stub for tests.
func NewPhotoRepoStub() *PhotoRepoStub {
	return &PhotoRepoStub{items: make(map[string]*models.Photo), nextID: 1}
}

// GetByHash fetches a photo by content hash.
func (s *PhotoRepoStub) GetByHash(_ context.Context, hash string) (*models.Photo, error) {
	item, ok := s.items[hash]
	if !ok {
		return nil, &models.AppError{Code: "NOT_FOUND", Message: "Photo not found"}
	}
	return item, nil
}

// Create stores photo metadata in-memory.
func (s *PhotoRepoStub) Create(_ context.Context, photo *models.Photo) error {
	if _, exists := s.items[photo.Hash]; exists {
		return models.NewConflictError("Photo already exists")
	}
	if photo.ID == 0 {
		photo.ID = s.nextID
		s.nextID++
	}
	s.items[photo.Hash] = photo
	return nil
}

// Update replaces the stored record for the photo's hash.
func (s *PhotoRepoStub) Update(_ context.Context, photo *models.Photo) error {
	s.items[photo.Hash] = photo
	return nil
}

// AddVariant appends a variant to the owning photo.
func (s *PhotoRepoStub) AddVariant(_ context.Context, variant *models.PhotoVariant) error {
	for _, item := range s.items {
		if item.ID == variant.PhotoID {
			item.Variants = append(item.Variants, *variant)
			return nil
		}
	}
	return &models.AppError{Code: "NOT_FOUND", Message: "Photo not found"}
}

// NextQueued returns the oldest queued photo, or (nil, nil) when none remain.
func (s *PhotoRepoStub) NextQueued(_ context.Context) (*models.Photo, error) {
	queued := make([]*models.Photo, 0)
	for _, item := range s.items {
		if item.Status == models.PhotoStatusQueued {
			queued = append(queued, item)
		}
	}
	if len(queued) == 0 {
		return nil, nil
	}
	sort.Slice(queued, func(i, j int) bool {
		return queued[i].UploadedAt.Before(queued[j].UploadedAt)
	})
	return queued[0], nil
}

// AdvanceUploadTime backdates a stored photo, for queue-ordering tests.
func (s *PhotoRepoStub) AdvanceUploadTime(hash string, d time.Duration) {
	if item, ok := s.items[hash]; ok {
		item.UploadedAt = item.UploadedAt.Add(d)
	}
}

// TinyPNG returns an in-memory PNG byte slice with the requested dimensions.
func TinyPNG(t interface {
	Helper()
	Fatalf(string, ...any)
}, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
