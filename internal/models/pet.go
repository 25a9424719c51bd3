package models

import (
	"time"

	"gorm.io/gorm"
)

// Species values accepted for a pet.
const (
	SpeciesDog    = "dog"
	SpeciesCat    = "cat"
	SpeciesBird   = "bird"
	SpeciesRabbit = "rabbit"
	SpeciesOther  = "other"
)

// Gender values accepted for a pet.
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderUnknown = "unknown"
)

// Pet represents a pet owned by exactly one user. WeightKg is the owner-entered
// current weight; history lives in WeightLog. A nil WeightKg serializes as
// JSON null, never NaN or an empty string.
type Pet struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Name        string         `gorm:"not null" json:"name"`
	Species     string         `gorm:"not null" json:"species"`
	Breed       string         `json:"breed"`
	BirthDate   *time.Time     `gorm:"type:date" json:"birth_date,omitempty"`
	Gender      string         `gorm:"default:unknown" json:"gender"`
	Color       string         `json:"color"`
	MicrochipID string         `json:"microchip_id"`
	WeightKg    *float64       `json:"weight_kg"`
	Notes       string         `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	WeightLogs  []WeightLog    `gorm:"foreignKey:PetID" json:"weight_logs,omitempty"`
	DietLogs    []DietLog      `gorm:"foreignKey:PetID" json:"diet_logs,omitempty"`
	VaccineLogs []VaccineLog   `gorm:"foreignKey:PetID" json:"vaccine_logs,omitempty"`
	GrowthLogs  []GrowthLog    `gorm:"foreignKey:PetID" json:"growth_logs,omitempty"`
}

// ValidSpecies reports whether s is one of the accepted species values.
func ValidSpecies(s string) bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit, SpeciesOther:
		return true
	}
	return false
}

// ValidGender reports whether g is one of the accepted gender values.
func ValidGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnknown:
		return true
	}
	return false
}
