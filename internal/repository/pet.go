package repository

import (
	"context"
	"errors"

	"pethealth/internal/cache"
	"pethealth/internal/models"
	"pethealth/internal/observability"

	"gorm.io/gorm"
)

// PetRepository defines persistence operations for pets.
type PetRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Pet, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Pet, error)
	Create(ctx context.Context, pet *models.Pet) error
	Update(ctx context.Context, pet *models.Pet) error
	Delete(ctx context.Context, id, userID uint) error
}

type petRepository struct {
	db *gorm.DB
}

// NewPetRepository returns a new PetRepository implementation.
func NewPetRepository(db *gorm.DB) PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) GetByID(ctx context.Context, id uint) (*models.Pet, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "GetByID", "pets")
	defer span.End()

	var pet models.Pet
	key := cache.PetKey(id)

	err := cache.Aside(ctx, key, &pet, cache.PetTTL, func() error {
		if err := r.db.WithContext(ctx).First(&pet, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Pet", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *petRepository) ListByUser(ctx context.Context, userID uint) ([]models.Pet, error) {
	var pets []models.Pet

	err := cache.Aside(ctx, cache.PetListKey(userID), &pets, cache.PetListTTL, func() error {
		if err := r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("created_at ASC").
			Find(&pets).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *petRepository) Create(ctx context.Context, pet *models.Pet) error {
	if err := r.db.WithContext(ctx).Create(pet).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePet(ctx, pet.ID, pet.UserID)
	return nil
}

func (r *petRepository) Update(ctx context.Context, pet *models.Pet) error {
	if err := r.db.WithContext(ctx).Save(pet).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePet(ctx, pet.ID, pet.UserID)
	return nil
}

func (r *petRepository) Delete(ctx context.Context, id, userID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Pet{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePet(ctx, id, userID)
	return nil
}
