package service

import (
	"context"
	"strings"

	"pethealth/internal/models"
	"pethealth/internal/repository"
	"pethealth/internal/validation"
)

type VaccineLogService struct {
	vaccineRepo repository.VaccineLogRepository
	pets        *PetService
}

type CreateVaccineLogInput struct {
	UserID          uint
	PetID           uint
	Date            string // YYYY-MM-DD
	VaccineType     string
	NextDueDate     string // YYYY-MM-DD, optional
	ReminderEnabled *bool  // defaults to true
	Notes           string
}

type UpdateVaccineLogInput struct {
	UserID          uint
	LogID           uint
	Date            *string
	VaccineType     *string
	NextDueDate     *string // empty string clears the due date
	ReminderEnabled *bool
	Notes           *string
}

func NewVaccineLogService(vaccineRepo repository.VaccineLogRepository, pets *PetService) *VaccineLogService {
	return &VaccineLogService{vaccineRepo: vaccineRepo, pets: pets}
}

func (s *VaccineLogService) ListForPet(ctx context.Context, in LogListInput) ([]models.VaccineLog, error) {
	if _, err := s.pets.GetOwnedPet(ctx, in.PetID, in.UserID); err != nil {
		return nil, err
	}
	filter, err := in.toFilter()
	if err != nil {
		return nil, err
	}
	return s.vaccineRepo.ListByPet(ctx, in.PetID, filter)
}

func (s *VaccineLogService) CreateLog(ctx context.Context, in CreateVaccineLogInput) (*models.VaccineLog, error) {
	if _, err := s.pets.GetOwnedPet(ctx, in.PetID, in.UserID); err != nil {
		return nil, err
	}
	date, err := validation.ParseDate("date", in.Date)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if strings.TrimSpace(in.VaccineType) == "" {
		return nil, models.NewValidationError("Vaccine type is required")
	}
	nextDue, err := validation.ParseOptionalDate("next_due_date", in.NextDueDate)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	reminderEnabled := true
	if in.ReminderEnabled != nil {
		reminderEnabled = *in.ReminderEnabled
	}

	log := &models.VaccineLog{
		PetID:           in.PetID,
		Date:            date,
		VaccineType:     in.VaccineType,
		NextDueDate:     nextDue,
		ReminderEnabled: reminderEnabled,
		Notes:           in.Notes,
	}
	if err := s.vaccineRepo.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *VaccineLogService) UpdateLog(ctx context.Context, in UpdateVaccineLogInput) (*models.VaccineLog, error) {
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
	if in.VaccineType != nil {
		if strings.TrimSpace(*in.VaccineType) == "" {
			return nil, models.NewValidationError("Vaccine type cannot be empty")
		}
		log.VaccineType = *in.VaccineType
	}
	if in.NextDueDate != nil {
		nextDue, err := validation.ParseOptionalDate("next_due_date", *in.NextDueDate)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		log.NextDueDate = nextDue
	}
	if in.ReminderEnabled != nil {
		log.ReminderEnabled = *in.ReminderEnabled
	}
	if in.Notes != nil {
		log.Notes = *in.Notes
	}

	if err := s.vaccineRepo.Update(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *VaccineLogService) DeleteLog(ctx context.Context, logID, userID uint) error {
	if _, err := s.getOwnedLog(ctx, logID, userID); err != nil {
		return err
	}
	return s.vaccineRepo.Delete(ctx, logID)
}

func (s *VaccineLogService) getOwnedLog(ctx context.Context, logID, userID uint) (*models.VaccineLog, error) {
	log, err := s.vaccineRepo.GetByID(ctx, logID)
	if err != nil {
		return nil, err
	}
	if _, err := s.pets.GetOwnedPet(ctx, log.PetID, userID); err != nil {
		return nil, models.NewNotFoundError("Vaccine log", logID)
	}
	return log, nil
}
