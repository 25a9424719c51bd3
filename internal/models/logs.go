package models

import (
	"time"

	"gorm.io/gorm"
)

// Diet log unit values.
const (
	UnitGrams     = "g"
	UnitKilograms = "kg"
	UnitCups      = "cups"
	UnitPieces    = "pieces"
)

// Diet log meal types.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// WeightLog is a dated weight measurement for a pet.
type WeightLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PetID     uint           `gorm:"not null;index" json:"pet_id"`
	Date      time.Time      `gorm:"type:date;not null" json:"date"`
	WeightKg  float64        `gorm:"not null" json:"weight_kg"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// DietLog is a dated feeding record for a pet. FoodAmount is optional; when
// present it must be positive and Unit names its measure.
type DietLog struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	PetID       uint           `gorm:"not null;index" json:"pet_id"`
	Date        time.Time      `gorm:"type:date;not null" json:"date"`
	Description string         `gorm:"not null" json:"description"`
	FoodAmount  *float64       `json:"food_amount"`
	Unit        string         `json:"unit"`
	MealType    string         `json:"meal_type"`
	FeedingTime string         `json:"feeding_time,omitempty"` // "HH:MM", optional
	Notes       string         `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// VaccineLog records an administered vaccine and, optionally, when the next
// dose is due. ReminderEnabled controls whether the due date feeds reminders.
type VaccineLog struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	PetID           uint           `gorm:"not null;index" json:"pet_id"`
	Date            time.Time      `gorm:"type:date;not null" json:"date"`
	VaccineType     string         `gorm:"not null" json:"vaccine_type"`
	NextDueDate     *time.Time     `gorm:"type:date" json:"next_due_date"`
	ReminderEnabled bool           `gorm:"default:true" json:"reminder_enabled"`
	Notes           string         `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// ValidUnit reports whether u is an accepted diet log unit.
func ValidUnit(u string) bool {
	switch u {
	case UnitGrams, UnitKilograms, UnitCups, UnitPieces:
		return true
	}
	return false
}

// ValidMealType reports whether m is an accepted meal type.
func ValidMealType(m string) bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}
