package service

import (
	"context"
	"strings"
	"time"

	"pethealth/internal/models"
	"pethealth/internal/repository"
	"pethealth/internal/validation"
)

// dueSoonWindow is the lookahead for the due-soon reminder listing.
const dueSoonWindow = 7 * 24 * time.Hour

type ReminderService struct {
	reminderRepo repository.ReminderRepository
	pets         *PetService
	now          func() time.Time
}

type CreateReminderInput struct {
	UserID  uint
	PetID   uint
	Type    string
	DueDate string // YYYY-MM-DD
	Message string
}

type UpdateReminderInput struct {
	UserID  uint
	ID      uint
	Type    *string
	DueDate *string
	Message *string
	Sent    *bool
}

func NewReminderService(reminderRepo repository.ReminderRepository, pets *PetService) *ReminderService {
	return &ReminderService{reminderRepo: reminderRepo, pets: pets, now: time.Now}
}

func (s *ReminderService) ListForUser(ctx context.Context, userID uint) ([]models.Reminder, error) {
	return s.reminderRepo.ListByUser(ctx, userID)
}

// ListForPet returns a pet's reminders, optionally narrowed by status
// (active, pending, overdue, sent) and reminder type. Active means unsent;
// pending means unsent and not yet due.
func (s *ReminderService) ListForPet(ctx context.Context, petID, userID uint, status, reminderType string) ([]models.Reminder, error) {
	if _, err := s.pets.GetOwnedPet(ctx, petID, userID); err != nil {
		return nil, err
	}
	switch status {
	case "", "active", "pending", "overdue", "sent":
	default:
		return nil, models.NewValidationError("Invalid status filter")
	}
	if reminderType != "" && !models.ValidReminderType(reminderType) {
		return nil, models.NewValidationError("Invalid reminder_type")
	}

	reminders, err := s.reminderRepo.ListByPet(ctx, petID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	filtered := make([]models.Reminder, 0, len(reminders))
	for _, r := range reminders {
		switch status {
		case "active":
			if r.Sent {
				continue
			}
		case "pending":
			if r.Sent || r.DueDate.Before(now) {
				continue
			}
		case "overdue":
			if r.Sent || !r.DueDate.Before(now) {
				continue
			}
		case "sent":
			if !r.Sent {
				continue
			}
		}
		if reminderType != "" && r.Type != reminderType {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered, nil
}

func (s *ReminderService) ListOverdue(ctx context.Context, userID uint) ([]models.Reminder, error) {
	return s.reminderRepo.ListOverdue(ctx, userID, s.now())
}

func (s *ReminderService) ListDueSoon(ctx context.Context, userID uint) ([]models.Reminder, error) {
	return s.reminderRepo.ListDueSoon(ctx, userID, s.now(), dueSoonWindow)
}

func (s *ReminderService) GetReminder(ctx context.Context, id, userID uint) (*models.Reminder, error) {
	return s.getOwnedReminder(ctx, id, userID)
}

func (s *ReminderService) CreateReminder(ctx context.Context, in CreateReminderInput) (*models.Reminder, error) {
	if _, err := s.pets.GetOwnedPet(ctx, in.PetID, in.UserID); err != nil {
		return nil, err
	}
	reminderType := in.Type
	if reminderType == "" {
		reminderType = models.ReminderGeneral
	}
	if !models.ValidReminderType(reminderType) {
		return nil, models.NewValidationError("Invalid reminder_type")
	}
	dueDate, err := validation.ParseDate("due_date", in.DueDate)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, models.NewValidationError("Message is required")
	}

	reminder := &models.Reminder{
		PetID:   in.PetID,
		Type:    reminderType,
		DueDate: dueDate,
		Message: in.Message,
	}
	if err := s.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) UpdateReminder(ctx context.Context, in UpdateReminderInput) (*models.Reminder, error) {
	reminder, err := s.getOwnedReminder(ctx, in.ID, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Type != nil {
		if !models.ValidReminderType(*in.Type) {
			return nil, models.NewValidationError("Invalid reminder_type")
		}
		reminder.Type = *in.Type
	}
	if in.DueDate != nil {
		dueDate, err := validation.ParseDate("due_date", *in.DueDate)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		reminder.DueDate = dueDate
	}
	if in.Message != nil {
		if strings.TrimSpace(*in.Message) == "" {
			return nil, models.NewValidationError("Message cannot be empty")
		}
		reminder.Message = *in.Message
	}
	if in.Sent != nil {
		reminder.Sent = *in.Sent
	}

	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

// MarkSent flags a reminder as delivered. Marking an already-sent reminder
// is a no-op, not an error.
func (s *ReminderService) MarkSent(ctx context.Context, id, userID uint) (*models.Reminder, error) {
	reminder, err := s.getOwnedReminder(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if reminder.Sent {
		return reminder, nil
	}
	reminder.Sent = true
	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) DeleteReminder(ctx context.Context, id, userID uint) error {
	if _, err := s.getOwnedReminder(ctx, id, userID); err != nil {
		return err
	}
	return s.reminderRepo.Delete(ctx, id)
}

func (s *ReminderService) getOwnedReminder(ctx context.Context, id, userID uint) (*models.Reminder, error) {
	reminder, err := s.reminderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.pets.GetOwnedPet(ctx, reminder.PetID, userID); err != nil {
		return nil, models.NewNotFoundError("Reminder", id)
	}
	return reminder, nil
}
