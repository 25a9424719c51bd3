package server

import (
	"pethealth/internal/models"
	"pethealth/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPetDietLogs handles GET /api/pets/:id/diet-logs
func (s *Server) GetPetDietLogs(c *fiber.Ctx) error {
	userID := currentUserID(c)

	petID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	logs, err := s.dietService.ListForPet(c.Context(), parseLogListQuery(c, petID, userID))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"diet_logs": logs})
}

// CreateDietLog handles POST /api/diet-logs
func (s *Server) CreateDietLog(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		PetID       uint     `json:"pet_id"`
		Date        string   `json:"date"`
		Description string   `json:"description"`
		FoodAmount  *float64 `json:"food_amount"`
		Unit        string   `json:"unit"`
		MealType    string   `json:"meal_type"`
		FeedingTime string   `json:"feeding_time"`
		Notes       string   `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	log, err := s.dietService.CreateLog(c.Context(), service.CreateDietLogInput{
		UserID:      userID,
		PetID:       req.PetID,
		Date:        req.Date,
		Description: req.Description,
		FoodAmount:  req.FoodAmount,
		Unit:        req.Unit,
		MealType:    req.MealType,
		FeedingTime: req.FeedingTime,
		Notes:       req.Notes,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"diet_log": log})
}

// UpdateDietLog handles PUT /api/diet-logs/:id
func (s *Server) UpdateDietLog(c *fiber.Ctx) error {
	userID := currentUserID(c)

	logID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Date        *string  `json:"date"`
		Description *string  `json:"description"`
		FoodAmount  *float64 `json:"food_amount"`
		Unit        *string  `json:"unit"`
		MealType    *string  `json:"meal_type"`
		FeedingTime *string  `json:"feeding_time"`
		Notes       *string  `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	log, err := s.dietService.UpdateLog(c.Context(), service.UpdateDietLogInput{
		UserID:      userID,
		LogID:       logID,
		Date:        req.Date,
		Description: req.Description,
		FoodAmount:  req.FoodAmount,
		Unit:        req.Unit,
		MealType:    req.MealType,
		FeedingTime: req.FeedingTime,
		Notes:       req.Notes,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"diet_log": log})
}

// DeleteDietLog handles DELETE /api/diet-logs/:id
func (s *Server) DeleteDietLog(c *fiber.Ctx) error {
	userID := currentUserID(c)

	logID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.dietService.DeleteLog(c.Context(), logID, userID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Diet log deleted"})
}
