// Command main runs the database seeder.
package main

import (
	"flag"
	"log"

	"pethealth/internal/config"
	"pethealth/internal/database"
	"pethealth/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	petsPerUser := flag.Int("pets", 3, "Number of pets per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		PetsPerUser: *petsPerUser,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users. All accounts use password %q.", *numUsers, seed.SeedPassword)
}
