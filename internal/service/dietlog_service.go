package service

import (
	"context"
	"strings"

	"pethealth/internal/models"
	"pethealth/internal/repository"
	"pethealth/internal/validation"
)

type DietLogService struct {
	dietRepo repository.DietLogRepository
	pets     *PetService
}

type CreateDietLogInput struct {
	UserID      uint
	PetID       uint
	Date        string // YYYY-MM-DD
	Description string
	FoodAmount  *float64
	Unit        string
	MealType    string
	FeedingTime string // HH:MM, optional
	Notes       string
}

type UpdateDietLogInput struct {
	UserID      uint
	LogID       uint
	Date        *string
	Description *string
	FoodAmount  *float64
	Unit        *string
	MealType    *string
	FeedingTime *string
	Notes       *string
}

func NewDietLogService(dietRepo repository.DietLogRepository, pets *PetService) *DietLogService {
	return &DietLogService{dietRepo: dietRepo, pets: pets}
}

func (s *DietLogService) ListForPet(ctx context.Context, in LogListInput) ([]models.DietLog, error) {
	if _, err := s.pets.GetOwnedPet(ctx, in.PetID, in.UserID); err != nil {
		return nil, err
	}
	if in.MealType != "" && !models.ValidMealType(in.MealType) {
		return nil, models.NewValidationError("Invalid meal_type")
	}
	filter, err := in.toFilter()
	if err != nil {
		return nil, err
	}
	return s.dietRepo.ListByPet(ctx, in.PetID, filter)
}

func (s *DietLogService) CreateLog(ctx context.Context, in CreateDietLogInput) (*models.DietLog, error) {
	if _, err := s.pets.GetOwnedPet(ctx, in.PetID, in.UserID); err != nil {
		return nil, err
	}
	date, err := validation.ParseDate("date", in.Date)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if err := validation.ValidateOptionalPositive("food_amount", in.FoodAmount); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.FoodAmount != nil && !models.ValidUnit(in.Unit) {
		return nil, models.NewValidationError("Invalid unit")
	}
	if in.MealType != "" && !models.ValidMealType(in.MealType) {
		return nil, models.NewValidationError("Invalid meal_type")
	}
	if err := validation.ValidateFeedingTime(in.FeedingTime); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	log := &models.DietLog{
		PetID:       in.PetID,
		Date:        date,
		Description: in.Description,
		FoodAmount:  in.FoodAmount,
		Unit:        in.Unit,
		MealType:    in.MealType,
		FeedingTime: in.FeedingTime,
		Notes:       in.Notes,
	}
	if err := s.dietRepo.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *DietLogService) UpdateLog(ctx context.Context, in UpdateDietLogInput) (*models.DietLog, error) {
	log, err := s.getOwnedLog(ctx, in.LogID, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Date != nil {
		date, err := validation.ParseDate("date", *in.Date)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		log.Date = date
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, models.NewValidationError("Description cannot be empty")
		}
		log.Description = *in.Description
	}
	if in.FoodAmount != nil {
		if err := validation.ValidateOptionalPositive("food_amount", in.FoodAmount); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		log.FoodAmount = in.FoodAmount
	}
	if in.Unit != nil {
		if *in.Unit != "" && !models.ValidUnit(*in.Unit) {
			return nil, models.NewValidationError("Invalid unit")
		}
		log.Unit = *in.Unit
	}
	if in.MealType != nil {
		if *in.MealType != "" && !models.ValidMealType(*in.MealType) {
			return nil, models.NewValidationError("Invalid meal_type")
		}
		log.MealType = *in.MealType
	}
	if in.FeedingTime != nil {
		if err := validation.ValidateFeedingTime(*in.FeedingTime); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		log.FeedingTime = *in.FeedingTime
	}
	if in.Notes != nil {
		log.Notes = *in.Notes
	}

	if err := s.dietRepo.Update(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *DietLogService) DeleteLog(ctx context.Context, logID, userID uint) error {
	if _, err := s.getOwnedLog(ctx, logID, userID); err != nil {
		return err
	}
	return s.dietRepo.Delete(ctx, logID)
}

func (s *DietLogService) getOwnedLog(ctx context.Context, logID, userID uint) (*models.DietLog, error) {
	log, err := s.dietRepo.GetByID(ctx, logID)
	if err != nil {
		return nil, err
	}
	if _, err := s.pets.GetOwnedPet(ctx, log.PetID, userID); err != nil {
		return nil, models.NewNotFoundError("Diet log", logID)
	}
	return log, nil
}
