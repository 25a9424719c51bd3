package server

import (
	"pethealth/internal/models"
	"pethealth/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPetVaccineLogs handles GET /api/pets/:id/vaccine-logs
func (s *Server) GetPetVaccineLogs(c *fiber.Ctx) error {
	userID := currentUserID(c)

	petID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	logs, err := s.vaccineService.ListForPet(c.Context(), parseLogListQuery(c, petID, userID))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"vaccine_logs": logs})
}

// CreateVaccineLog handles POST /api/vaccine-logs
func (s *Server) CreateVaccineLog(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		PetID           uint   `json:"pet_id"`
		Date            string `json:"date"`
		VaccineType     string `json:"vaccine_type"`
		NextDueDate     string `json:"next_due_date"`
		ReminderEnabled *bool  `json:"reminder_enabled"`
		Notes           string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	log, err := s.vaccineService.CreateLog(c.Context(), service.CreateVaccineLogInput{
		UserID:          userID,
		PetID:           req.PetID,
		Date:            req.Date,
		VaccineType:     req.VaccineType,
		NextDueDate:     req.NextDueDate,
		ReminderEnabled: req.ReminderEnabled,
		Notes:           req.Notes,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"vaccine_log": log})
}

// UpdateVaccineLog handles PUT /api/vaccine-logs/:id
func (s *Server) UpdateVaccineLog(c *fiber.Ctx) error {
	userID := currentUserID(c)

	logID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Date            *string `json:"date"`
		VaccineType     *string `json:"vaccine_type"`
		NextDueDate     *string `json:"next_due_date"`
		ReminderEnabled *bool   `json:"reminder_enabled"`
		Notes           *string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	log, err := s.vaccineService.UpdateLog(c.Context(), service.UpdateVaccineLogInput{
		UserID:          userID,
		LogID:           logID,
		Date:            req.Date,
		VaccineType:     req.VaccineType,
		NextDueDate:     req.NextDueDate,
		ReminderEnabled: req.ReminderEnabled,
		Notes:           req.Notes,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"vaccine_log": log})
}

// DeleteVaccineLog handles DELETE /api/vaccine-logs/:id
func (s *Server) DeleteVaccineLog(c *fiber.Ctx) error {
	userID := currentUserID(c)

	logID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.vaccineService.DeleteLog(c.Context(), logID, userID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Vaccine log deleted"})
}
