package database

import "pethealth/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Order matters: owners before owned so foreign keys resolve during migration.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Pet{},
		&models.WeightLog{},
		&models.DietLog{},
		&models.VaccineLog{},
		&models.GrowthLog{},
		&models.Reminder{},
		&models.Photo{},
		&models.PhotoVariant{},
	}
}
