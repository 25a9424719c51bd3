package service

import (
	"context"

	"pethealth/internal/models"
	"pethealth/internal/repository"
	"pethealth/internal/validation"
)

type GrowthLogService struct {
	growthRepo repository.GrowthLogRepository
	photos     *PhotoService
	pets       *PetService
}

type CreateGrowthLogInput struct {
	UserID      uint
	PetID       uint
	Date        string // YYYY-MM-DD
	Description string
	PhotoHash   string // optional, must reference an uploaded photo
}

func NewGrowthLogService(growthRepo repository.GrowthLogRepository, photos *PhotoService, pets *PetService) *GrowthLogService {
	return &GrowthLogService{growthRepo: growthRepo, photos: photos, pets: pets}
}

func (s *GrowthLogService) ListForPet(ctx context.Context, in LogListInput) ([]models.GrowthLog, error) {
	if _, err := s.pets.GetOwnedPet(ctx, in.PetID, in.UserID); err != nil {
		return nil, err
	}
	filter, err := in.toFilter()
	if err != nil {
		return nil, err
	}
	return s.growthRepo.ListByPet(ctx, in.PetID, filter)
}

func (s *GrowthLogService) CreateLog(ctx context.Context, in CreateGrowthLogInput) (*models.GrowthLog, error) {
	if _, err := s.pets.GetOwnedPet(ctx, in.PetID, in.UserID); err != nil {
		return nil, err
	}
	date, err := validation.ParseDate("date", in.Date)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Description == "" && in.PhotoHash == "" {
		return nil, models.NewValidationError("Description or photo is required")
	}
	if in.PhotoHash != "" {
		photo, err := s.photos.GetByHash(ctx, in.PhotoHash)
		if err != nil {
			return nil, err
		}
		if photo.UserID != in.UserID {
			return nil, &models.AppError{Code: "NOT_FOUND", Message: "Photo not found"}
		}
	}

	log := &models.GrowthLog{
		PetID:       in.PetID,
		Date:        date,
		Description: in.Description,
		PhotoHash:   in.PhotoHash,
	}
	if err := s.growthRepo.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *GrowthLogService) DeleteLog(ctx context.Context, logID, userID uint) error {
	log, err := s.growthRepo.GetByID(ctx, logID)
	if err != nil {
		return err
	}
	if _, err := s.pets.GetOwnedPet(ctx, log.PetID, userID); err != nil {
		return models.NewNotFoundError("Growth log", logID)
	}
	return s.growthRepo.Delete(ctx, logID)
}
