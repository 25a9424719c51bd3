package server

import (
	"io"
	"strings"

	"pethealth/internal/models"
	"pethealth/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPetGrowthLogs handles GET /api/pets/:id/growth-logs
func (s *Server) GetPetGrowthLogs(c *fiber.Ctx) error {
	userID := currentUserID(c)

	petID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	logs, err := s.growthService.ListForPet(c.Context(), parseLogListQuery(c, petID, userID))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"growth_logs": logs})
}

// CreateGrowthLog handles POST /api/pets/:id/growth-logs. The body is
// multipart: form fields date and description plus an optional photo file.
func (s *Server) CreateGrowthLog(c *fiber.Ctx) error {
	userID := currentUserID(c)

	petID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	photoHash := ""
	if file, fileErr := c.FormFile("photo"); fileErr == nil {
		src, err := file.Open()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unable to read uploaded file"))
		}
		content, err := io.ReadAll(src)
		_ = src.Close()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unable to read uploaded file"))
		}

		photo, err := s.photoService.Upload(c.UserContext(), service.UploadPhotoInput{
			UserID:      userID,
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Content:     content,
		})
		if err != nil {
			return models.RespondWithError(c, mapServiceError(err), err)
		}
		photoHash = photo.Hash
	}

	log, err := s.growthService.CreateLog(c.Context(), service.CreateGrowthLogInput{
		UserID:      userID,
		PetID:       petID,
		Date:        c.FormValue("date"),
		Description: c.FormValue("description"),
		PhotoHash:   photoHash,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"growth_log": log})
}

// DeleteGrowthLog handles DELETE /api/pets/:id/growth-logs/:logId
func (s *Server) DeleteGrowthLog(c *fiber.Ctx) error {
	userID := currentUserID(c)

	logID, err := s.parseID(c, "logId")
	if err != nil {
		return nil
	}

	if err := s.growthService.DeleteLog(c.Context(), logID, userID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Growth log deleted"})
}

// UploadPhoto handles POST /api/photos
func (s *Server) UploadPhoto(c *fiber.Ctx) error {
	userID := currentUserID(c)

	file, err := c.FormFile("photo")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}

	photo, err := s.photoService.Upload(c.UserContext(), service.UploadPhotoInput{
		UserID:      userID,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"photo": photo})
}

// GetPhoto handles GET /api/photos/:hash and /api/photos/:hash/:size,
// serving the stored file. Unrendered sizes fall back to the master.
func (s *Server) GetPhoto(c *fiber.Ctx) error {
	hash := strings.TrimSpace(c.Params("hash"))
	size, _ := c.ParamsInt("size", 0)

	_, path, err := s.photoService.ResolveForServing(c.Context(), hash, size)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	c.Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.SendFile(path)
}
