package server

import (
	"pethealth/internal/models"
	"pethealth/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPetWeightLogs handles GET /api/pets/:id/weight-logs
func (s *Server) GetPetWeightLogs(c *fiber.Ctx) error {
	userID := currentUserID(c)

	petID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	logs, err := s.weightService.ListForPet(c.Context(), parseLogListQuery(c, petID, userID))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"weight_logs": logs})
}

// GetWeightTrend handles GET /api/pets/:id/weight-logs/trend
func (s *Server) GetWeightTrend(c *fiber.Ctx) error {
	userID := currentUserID(c)

	petID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	trend, err := s.weightService.Trend(c.Context(), petID, userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"weight_trend": trend})
}

// CreateWeightLog handles POST /api/weight-logs
func (s *Server) CreateWeightLog(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		PetID    uint     `json:"pet_id"`
		Date     string   `json:"date"`
		WeightKg *float64 `json:"weight_kg"`
		Notes    string   `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.WeightKg == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("weight_kg is required"))
	}

	log, err := s.weightService.CreateLog(c.Context(), service.CreateWeightLogInput{
		UserID:   userID,
		PetID:    req.PetID,
		Date:     req.Date,
		WeightKg: *req.WeightKg,
		Notes:    req.Notes,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"weight_log": log})
}

// UpdateWeightLog handles PUT /api/weight-logs/:id
func (s *Server) UpdateWeightLog(c *fiber.Ctx) error {
	userID := currentUserID(c)

	logID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Date     *string  `json:"date"`
		WeightKg *float64 `json:"weight_kg"`
		Notes    *string  `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	log, err := s.weightService.UpdateLog(c.Context(), service.UpdateWeightLogInput{
		UserID:   userID,
		LogID:    logID,
		Date:     req.Date,
		WeightKg: req.WeightKg,
		Notes:    req.Notes,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"weight_log": log})
}

// DeleteWeightLog handles DELETE /api/weight-logs/:id
func (s *Server) DeleteWeightLog(c *fiber.Ctx) error {
	userID := currentUserID(c)

	logID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.weightService.DeleteLog(c.Context(), logID, userID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Weight log deleted"})
}
