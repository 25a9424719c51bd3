package server

import (
	"pethealth/internal/models"
	"pethealth/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetReminders handles GET /api/reminders
func (s *Server) GetReminders(c *fiber.Ctx) error {
	userID := currentUserID(c)

	reminders, err := s.reminderService.ListForUser(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"reminders": reminders})
}

// GetPetReminders handles GET /api/pets/:id/reminders?status=...&type=...
func (s *Server) GetPetReminders(c *fiber.Ctx) error {
	userID := currentUserID(c)

	petID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	reminders, err := s.reminderService.ListForPet(c.Context(), petID, userID,
		c.Query("status"), c.Query("type"))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"reminders": reminders})
}

// GetOverdueReminders handles GET /api/reminders/overdue
func (s *Server) GetOverdueReminders(c *fiber.Ctx) error {
	userID := currentUserID(c)

	reminders, err := s.reminderService.ListOverdue(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"reminders": reminders})
}

// GetDueSoonReminders handles GET /api/reminders/due-soon
func (s *Server) GetDueSoonReminders(c *fiber.Ctx) error {
	userID := currentUserID(c)

	reminders, err := s.reminderService.ListDueSoon(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"reminders": reminders})
}

// GetReminder handles GET /api/reminders/:id
func (s *Server) GetReminder(c *fiber.Ctx) error {
	userID := currentUserID(c)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	reminder, err := s.reminderService.GetReminder(c.Context(), id, userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"reminder": reminder})
}

// CreateReminder handles POST /api/reminders
func (s *Server) CreateReminder(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		PetID   uint   `json:"pet_id"`
		Type    string `json:"reminder_type"`
		DueDate string `json:"due_date"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reminder, err := s.reminderService.CreateReminder(c.Context(), service.CreateReminderInput{
		UserID:  userID,
		PetID:   req.PetID,
		Type:    req.Type,
		DueDate: req.DueDate,
		Message: req.Message,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"reminder": reminder})
}

// UpdateReminder handles PUT /api/reminders/:id
func (s *Server) UpdateReminder(c *fiber.Ctx) error {
	userID := currentUserID(c)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Type    *string `json:"reminder_type"`
		DueDate *string `json:"due_date"`
		Message *string `json:"message"`
		Sent    *bool   `json:"is_sent"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reminder, err := s.reminderService.UpdateReminder(c.Context(), service.UpdateReminderInput{
		UserID:  userID,
		ID:      id,
		Type:    req.Type,
		DueDate: req.DueDate,
		Message: req.Message,
		Sent:    req.Sent,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"reminder": reminder})
}

// MarkReminderSent handles PATCH /api/reminders/:id/mark-sent
func (s *Server) MarkReminderSent(c *fiber.Ctx) error {
	userID := currentUserID(c)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	reminder, err := s.reminderService.MarkSent(c.Context(), id, userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"reminder": reminder})
}

// DeleteReminder handles DELETE /api/reminders/:id
func (s *Server) DeleteReminder(c *fiber.Ctx) error {
	userID := currentUserID(c)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.reminderService.DeleteReminder(c.Context(), id, userID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Reminder deleted"})
}
