// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"pethealth/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	PetsPerUser int
	ShouldClean bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users, %d pets each...", opts.NumUsers, opts.PetsPerUser)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db)

	users, err := f.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	totalPets := 0
	for _, user := range users {
		pets, err := f.CreatePets(user, opts.PetsPerUser)
		if err != nil {
			return fmt.Errorf("failed to create pets for user %d: %w", user.ID, err)
		}
		totalPets += len(pets)

		for _, pet := range pets {
			if err := f.CreateWeightHistory(pet, 12); err != nil {
				return fmt.Errorf("failed to create weight logs for pet %d: %w", pet.ID, err)
			}
			if err := f.CreateDietHistory(pet, 20); err != nil {
				return fmt.Errorf("failed to create diet logs for pet %d: %w", pet.ID, err)
			}
			if err := f.CreateVaccineHistory(pet, 3); err != nil {
				return fmt.Errorf("failed to create vaccine logs for pet %d: %w", pet.ID, err)
			}
			if err := f.CreateReminders(pet, 2); err != nil {
				return fmt.Errorf("failed to create reminders for pet %d: %w", pet.ID, err)
			}
		}
	}
	log.Printf("created %d pets with log history", totalPets)

	log.Println("Database seeding completed")
	return nil
}

// clearData removes seeded rows in dependency order.
func clearData(db *gorm.DB) error {
	tables := []any{
		&models.Reminder{},
		&models.GrowthLog{},
		&models.VaccineLog{},
		&models.DietLog{},
		&models.WeightLog{},
		&models.PhotoVariant{},
		&models.Photo{},
		&models.Pet{},
		&models.User{},
	}
	for _, table := range tables {
		if err := db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}
