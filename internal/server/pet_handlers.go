package server

import (
	"pethealth/internal/models"
	"pethealth/internal/service"

	"github.com/gofiber/fiber/v2"
)

// petRequest is the JSON body shared by pet create and update. Pointer
// fields distinguish "absent" from "set to zero value" on update.
type petRequest struct {
	Name        *string  `json:"name"`
	Species     *string  `json:"species"`
	Breed       *string  `json:"breed"`
	BirthDate   *string  `json:"birth_date"`
	Gender      *string  `json:"gender"`
	Color       *string  `json:"color"`
	MicrochipID *string  `json:"microchip_id"`
	WeightKg    *float64 `json:"weight_kg"`
	// ClearWeight removes the stored weight on update; a JSON null weight_kg
	// alone cannot be told apart from an absent field.
	ClearWeight bool    `json:"clear_weight"`
	Notes       *string `json:"notes"`
}

// GetPets handles GET /api/pets
func (s *Server) GetPets(c *fiber.Ctx) error {
	userID := currentUserID(c)

	pets, err := s.petService.ListPets(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"pets": pets})
}

// GetPet handles GET /api/pets/:id
func (s *Server) GetPet(c *fiber.Ctx) error {
	userID := currentUserID(c)

	petID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	pet, err := s.petService.GetOwnedPet(c.Context(), petID, userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"pet": pet})
}

// CreatePet handles POST /api/pets
func (s *Server) CreatePet(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req petRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreatePetInput{UserID: userID, WeightKg: req.WeightKg}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Species != nil {
		in.Species = *req.Species
	}
	if req.Breed != nil {
		in.Breed = *req.Breed
	}
	if req.BirthDate != nil {
		in.BirthDate = *req.BirthDate
	}
	if req.Gender != nil {
		in.Gender = *req.Gender
	}
	if req.Color != nil {
		in.Color = *req.Color
	}
	if req.MicrochipID != nil {
		in.MicrochipID = *req.MicrochipID
	}
	if req.Notes != nil {
		in.Notes = *req.Notes
	}

	pet, err := s.petService.CreatePet(c.Context(), in)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"pet": pet})
}

// UpdatePet handles PUT /api/pets/:id
func (s *Server) UpdatePet(c *fiber.Ctx) error {
	userID := currentUserID(c)

	petID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req petRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	pet, err := s.petService.UpdatePet(c.Context(), service.UpdatePetInput{
		UserID:      userID,
		PetID:       petID,
		Name:        req.Name,
		Species:     req.Species,
		Breed:       req.Breed,
		BirthDate:   req.BirthDate,
		Gender:      req.Gender,
		Color:       req.Color,
		MicrochipID: req.MicrochipID,
		WeightKg:    req.WeightKg,
		ClearWeight: req.ClearWeight,
		Notes:       req.Notes,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"pet": pet})
}

// DeletePet handles DELETE /api/pets/:id
func (s *Server) DeletePet(c *fiber.Ctx) error {
	userID := currentUserID(c)

	petID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.petService.DeletePet(c.Context(), petID, userID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Pet deleted"})
}
