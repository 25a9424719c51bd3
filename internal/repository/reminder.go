package repository

import (
	"context"
	"errors"
	"time"

	"pethealth/internal/models"

	"gorm.io/gorm"
)

// ReminderRepository defines persistence operations for reminders.
type ReminderRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Reminder, error)
	ListByPet(ctx context.Context, petID uint) ([]models.Reminder, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Reminder, error)
	// ListOverdue returns unsent reminders for the user's pets whose due
	// date is strictly before now.
	ListOverdue(ctx context.Context, userID uint, now time.Time) ([]models.Reminder, error)
	// ListDueSoon returns unsent reminders due within [now, now+window].
	ListDueSoon(ctx context.Context, userID uint, now time.Time, window time.Duration) ([]models.Reminder, error)
	Create(ctx context.Context, reminder *models.Reminder) error
	Update(ctx context.Context, reminder *models.Reminder) error
	Delete(ctx context.Context, id uint) error
}

type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository returns a new ReminderRepository implementation.
func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) GetByID(ctx context.Context, id uint) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := r.db.WithContext(ctx).First(&reminder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Reminder", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &reminder, nil
}

func (r *reminderRepository) ListByPet(ctx context.Context, petID uint) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := r.db.WithContext(ctx).
		Where("pet_id = ?", petID).
		Order("due_date ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reminders, nil
}

func (r *reminderRepository) ListByUser(ctx context.Context, userID uint) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := r.db.WithContext(ctx).
		Joins("JOIN pets ON pets.id = reminders.pet_id").
		Where("pets.user_id = ? AND pets.deleted_at IS NULL", userID).
		Order("reminders.due_date ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reminders, nil
}

func (r *reminderRepository) ListOverdue(ctx context.Context, userID uint, now time.Time) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := r.db.WithContext(ctx).
		Joins("JOIN pets ON pets.id = reminders.pet_id").
		Where("pets.user_id = ? AND pets.deleted_at IS NULL", userID).
		Where("reminders.sent = ? AND reminders.due_date < ?", false, now).
		Order("reminders.due_date ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reminders, nil
}

func (r *reminderRepository) ListDueSoon(ctx context.Context, userID uint, now time.Time, window time.Duration) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := r.db.WithContext(ctx).
		Joins("JOIN pets ON pets.id = reminders.pet_id").
		Where("pets.user_id = ? AND pets.deleted_at IS NULL", userID).
		Where("reminders.sent = ? AND reminders.due_date >= ? AND reminders.due_date <= ?", false, now, now.Add(window)).
		Order("reminders.due_date ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reminders, nil
}

func (r *reminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reminderRepository) Update(ctx context.Context, reminder *models.Reminder) error {
	if err := r.db.WithContext(ctx).Save(reminder).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reminderRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Reminder{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
