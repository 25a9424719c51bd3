package service

import (
	"context"
	"strings"

	"pethealth/internal/models"
	"pethealth/internal/repository"
	"pethealth/internal/validation"
)

type PetService struct {
	petRepo repository.PetRepository
}

type CreatePetInput struct {
	UserID      uint
	Name        string
	Species     string
	Breed       string
	BirthDate   string // YYYY-MM-DD, optional
	Gender      string
	Color       string
	MicrochipID string
	WeightKg    *float64
	Notes       string
}

type UpdatePetInput struct {
	UserID      uint
	PetID       uint
	Name        *string
	Species     *string
	Breed       *string
	BirthDate   *string
	Gender      *string
	Color       *string
	MicrochipID *string
	WeightKg    *float64
	ClearWeight bool
	Notes       *string
}

func NewPetService(petRepo repository.PetRepository) *PetService {
	return &PetService{petRepo: petRepo}
}

const maxPetNameLen = 100

// GetOwnedPet loads a pet and enforces that it belongs to userID. Pets owned
// by other users are reported as not found rather than forbidden, so pet IDs
// do not leak across accounts.
func (s *PetService) GetOwnedPet(ctx context.Context, petID, userID uint) (*models.Pet, error) {
	pet, err := s.petRepo.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if pet.UserID != userID {
		return nil, models.NewNotFoundError("Pet", petID)
	}
	return pet, nil
}

func (s *PetService) ListPets(ctx context.Context, userID uint) ([]models.Pet, error) {
	return s.petRepo.ListByUser(ctx, userID)
}

func (s *PetService) CreatePet(ctx context.Context, in CreatePetInput) (*models.Pet, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if len(name) > maxPetNameLen {
		return nil, models.NewValidationError("Name too long (max 100 characters)")
	}
	if !models.ValidSpecies(in.Species) {
		return nil, models.NewValidationError("Invalid species")
	}
	gender := in.Gender
	if gender == "" {
		gender = models.GenderUnknown
	}
	if !models.ValidGender(gender) {
		return nil, models.NewValidationError("Invalid gender")
	}
	birthDate, err := validation.ParseOptionalDate("birth_date", in.BirthDate)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateOptionalPositive("weight_kg", in.WeightKg); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	pet := &models.Pet{
		UserID:      in.UserID,
		Name:        name,
		Species:     in.Species,
		Breed:       in.Breed,
		BirthDate:   birthDate,
		Gender:      gender,
		Color:       in.Color,
		MicrochipID: in.MicrochipID,
		WeightKg:    in.WeightKg,
		Notes:       in.Notes,
	}
	if err := s.petRepo.Create(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *PetService) UpdatePet(ctx context.Context, in UpdatePetInput) (*models.Pet, error) {
	pet, err := s.GetOwnedPet(ctx, in.PetID, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, models.NewValidationError("Name cannot be empty")
		}
		if len(name) > maxPetNameLen {
			return nil, models.NewValidationError("Name too long (max 100 characters)")
		}
		pet.Name = name
	}
	if in.Species != nil {
		if !models.ValidSpecies(*in.Species) {
			return nil, models.NewValidationError("Invalid species")
		}
		pet.Species = *in.Species
	}
	if in.Gender != nil {
		if !models.ValidGender(*in.Gender) {
			return nil, models.NewValidationError("Invalid gender")
		}
		pet.Gender = *in.Gender
	}
	if in.BirthDate != nil {
		birthDate, err := validation.ParseOptionalDate("birth_date", *in.BirthDate)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		pet.BirthDate = birthDate
	}
	if in.Breed != nil {
		pet.Breed = *in.Breed
	}
	if in.Color != nil {
		pet.Color = *in.Color
	}
	if in.MicrochipID != nil {
		pet.MicrochipID = *in.MicrochipID
	}
	if in.WeightKg != nil {
		if err := validation.ValidateOptionalPositive("weight_kg", in.WeightKg); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		pet.WeightKg = in.WeightKg
	} else if in.ClearWeight {
		pet.WeightKg = nil
	}
	if in.Notes != nil {
		pet.Notes = *in.Notes
	}

	if err := s.petRepo.Update(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *PetService) DeletePet(ctx context.Context, petID, userID uint) error {
	if _, err := s.GetOwnedPet(ctx, petID, userID); err != nil {
		return err
	}
	return s.petRepo.Delete(ctx, petID, userID)
}
