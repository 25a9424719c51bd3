package repository

import (
	"context"
	"errors"

	"pethealth/internal/models"

	"gorm.io/gorm"
)

// PhotoRepository defines persistence operations for photos and their
// encoded variants.
type PhotoRepository interface {
	GetByHash(ctx context.Context, hash string) (*models.Photo, error)
	Create(ctx context.Context, photo *models.Photo) error
	Update(ctx context.Context, photo *models.Photo) error
	AddVariant(ctx context.Context, variant *models.PhotoVariant) error
	// NextQueued claims the oldest queued photo for processing, or
	// returns (nil, nil) when the queue is empty.
	NextQueued(ctx context.Context) (*models.Photo, error)
}

type photoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository returns a new PhotoRepository implementation.
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) GetByHash(ctx context.Context, hash string) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("hash = ?", hash).
		First(&photo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.AppError{Code: "NOT_FOUND", Message: "Photo not found"}
		}
		return nil, models.NewInternalError(err)
	}
	return &photo, nil
}

func (r *photoRepository) Create(ctx context.Context, photo *models.Photo) error {
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Photo already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *photoRepository) Update(ctx context.Context, photo *models.Photo) error {
	if err := r.db.WithContext(ctx).Save(photo).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *photoRepository) AddVariant(ctx context.Context, variant *models.PhotoVariant) error {
	if err := r.db.WithContext(ctx).Create(variant).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *photoRepository) NextQueued(ctx context.Context) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.WithContext(ctx).
		Where("status = ?", models.PhotoStatusQueued).
		Order("uploaded_at ASC").
		First(&photo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &photo, nil
}
