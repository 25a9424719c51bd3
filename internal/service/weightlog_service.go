package service

import (
	"context"
	"time"

	"pethealth/internal/models"
	"pethealth/internal/repository"
	"pethealth/internal/validation"
)

type WeightLogService struct {
	weightRepo repository.WeightLogRepository
	pets       *PetService
}

type CreateWeightLogInput struct {
	UserID   uint
	PetID    uint
	Date     string // YYYY-MM-DD
	WeightKg float64
	Notes    string
}

type UpdateWeightLogInput struct {
	UserID   uint
	LogID    uint
	Date     *string
	WeightKg *float64
	Notes    *string
}

// LogListInput carries the optional query filters for log listings.
type LogListInput struct {
	UserID    uint
	PetID     uint
	StartDate string
	EndDate   string
	MealType  string
	Limit     int
}

// TrendPoint is one entry of a weight trend, ordered oldest first.
// ChangeKg is nil for the first point and the delta from the previous
// measurement otherwise.
type TrendPoint struct {
	Date     time.Time `json:"date"`
	WeightKg float64   `json:"weight_kg"`
	ChangeKg *float64  `json:"change_kg"`
}

// trendWindow is how many of the most recent measurements feed the trend.
const trendWindow = 10

func NewWeightLogService(weightRepo repository.WeightLogRepository, pets *PetService) *WeightLogService {
	return &WeightLogService{weightRepo: weightRepo, pets: pets}
}

func (in LogListInput) toFilter() (repository.LogFilter, error) {
	start, err := validation.ParseOptionalDate("start_date", in.StartDate)
	if err != nil {
		return repository.LogFilter{}, models.NewValidationError(err.Error())
	}
	end, err := validation.ParseOptionalDate("end_date", in.EndDate)
	if err != nil {
		return repository.LogFilter{}, models.NewValidationError(err.Error())
	}
	if in.Limit < 0 {
		return repository.LogFilter{}, models.NewValidationError("limit must be positive")
	}
	return repository.LogFilter{
		StartDate: start,
		EndDate:   end,
		MealType:  in.MealType,
		Limit:     in.Limit,
	}, nil
}

func (s *WeightLogService) ListForPet(ctx context.Context, in LogListInput) ([]models.WeightLog, error) {
	if _, err := s.pets.GetOwnedPet(ctx, in.PetID, in.UserID); err != nil {
		return nil, err
	}
	filter, err := in.toFilter()
	if err != nil {
		return nil, err
	}
	return s.weightRepo.ListByPet(ctx, in.PetID, filter)
}

func (s *WeightLogService) CreateLog(ctx context.Context, in CreateWeightLogInput) (*models.WeightLog, error) {
	if _, err := s.pets.GetOwnedPet(ctx, in.PetID, in.UserID); err != nil {
		return nil, err
	}
	date, err := validation.ParseDate("date", in.Date)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePositive("weight_kg", in.WeightKg); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	log := &models.WeightLog{
		PetID:    in.PetID,
		Date:     date,
		WeightKg: in.WeightKg,
		Notes:    in.Notes,
	}
	if err := s.weightRepo.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *WeightLogService) UpdateLog(ctx context.Context, in UpdateWeightLogInput) (*models.WeightLog, error) {
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
	if in.WeightKg != nil {
		if err := validation.ValidatePositive("weight_kg", *in.WeightKg); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		log.WeightKg = *in.WeightKg
	}
	if in.Notes != nil {
		log.Notes = *in.Notes
	}

	if err := s.weightRepo.Update(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *WeightLogService) DeleteLog(ctx context.Context, logID, userID uint) error {
	if _, err := s.getOwnedLog(ctx, logID, userID); err != nil {
		return err
	}
	return s.weightRepo.Delete(ctx, logID)
}

// Trend returns up to the last ten measurements for the pet, oldest first,
// each annotated with the change from the previous one.
func (s *WeightLogService) Trend(ctx context.Context, petID, userID uint) ([]TrendPoint, error) {
	if _, err := s.pets.GetOwnedPet(ctx, petID, userID); err != nil {
		return nil, err
	}
	logs, err := s.weightRepo.ListByPet(ctx, petID, repository.LogFilter{Limit: trendWindow})
	if err != nil {
		return nil, err
	}

	// Repo order is newest first; the trend reads oldest first.
	points := make([]TrendPoint, len(logs))
	for i, log := range logs {
		points[len(logs)-1-i] = TrendPoint{Date: log.Date, WeightKg: log.WeightKg}
	}
	for i := 1; i < len(points); i++ {
		change := points[i].WeightKg - points[i-1].WeightKg
		points[i].ChangeKg = &change
	}
	return points, nil
}

func (s *WeightLogService) getOwnedLog(ctx context.Context, logID, userID uint) (*models.WeightLog, error) {
	log, err := s.weightRepo.GetByID(ctx, logID)
	if err != nil {
		return nil, err
	}
	if _, err := s.pets.GetOwnedPet(ctx, log.PetID, userID); err != nil {
		return nil, models.NewNotFoundError("Weight log", logID)
	}
	return log, nil
}
