package models

import (
	"time"

	"gorm.io/gorm"
)

// Reminder types.
const (
	ReminderVaccine = "vaccine"
	ReminderWeight  = "weight"
	ReminderDiet    = "diet"
	ReminderGeneral = "general"
)

// Reminder is a dated prompt attached to a pet, e.g. an upcoming vaccine
// booster. Sent marks reminders that have been delivered to the owner.
type Reminder struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PetID     uint           `gorm:"not null;index" json:"pet_id"`
	Type      string         `gorm:"not null" json:"reminder_type"`
	DueDate   time.Time      `gorm:"type:date;not null" json:"due_date"`
	Message   string         `gorm:"not null" json:"message"`
	Sent      bool           `gorm:"default:false" json:"is_sent"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ValidReminderType reports whether t is an accepted reminder type.
func ValidReminderType(t string) bool {
	switch t {
	case ReminderVaccine, ReminderWeight, ReminderDiet, ReminderGeneral:
		return true
	}
	return false
}
