package seed

import (
	"fmt"
	"math/rand"
	"time"

	"pethealth/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword is the shared password for all seeded users, so developers
// can log in as any of them.
const SeedPassword = "password123"

var (
	speciesPool = []string{
		models.SpeciesDog, models.SpeciesDog, models.SpeciesCat,
		models.SpeciesCat, models.SpeciesBird, models.SpeciesRabbit,
	}

	dogBreeds = []string{
		"Labrador Retriever", "German Shepherd", "Golden Retriever",
		"Beagle", "Poodle", "Dachshund", "Corgi", "Mixed",
	}
	catBreeds = []string{
		"Domestic Shorthair", "Maine Coon", "Siamese", "Ragdoll",
		"British Shorthair", "Bengal", "Mixed",
	}

	vaccineTypes = []string{
		"Rabies", "Distemper", "Parvovirus", "Bordetella", "Leptospirosis",
		"FVRCP", "FeLV",
	}

	mealTypes = []string{
		models.MealBreakfast, models.MealLunch, models.MealDinner, models.MealSnack,
	}
	feedingTimes = []string{"07:30", "12:00", "18:00", "21:00"}

	dietDescriptions = []string{
		"Dry kibble", "Wet food", "Raw diet portion", "Chicken and rice",
		"Prescription diet", "Dental treats", "Training treats",
	}
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUsers persists n users with the shared seed password.
func (f *Factory) CreateUsers(n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		user := &models.User{
			FirstName: first,
			LastName:  last,
			Email:     fmt.Sprintf("%s.%s%d@example.com", first, last, i),
			Password:  string(hashed),
		}
		if err := f.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// CreatePets persists n pets for the given owner with plausible attributes.
func (f *Factory) CreatePets(owner *models.User, n int) ([]*models.Pet, error) {
	pets := make([]*models.Pet, 0, n)
	for i := 0; i < n; i++ {
		species := speciesPool[f.rand.Intn(len(speciesPool))]
		birth := time.Now().AddDate(-f.rand.Intn(12)-1, -f.rand.Intn(12), 0)
		weight := f.petWeight(species)
		pet := &models.Pet{
			UserID:    owner.ID,
			Name:      gofakeit.PetName(),
			Species:   species,
			Breed:     f.breedFor(species),
			BirthDate: &birth,
			Gender:    []string{models.GenderMale, models.GenderFemale}[f.rand.Intn(2)],
			Color:     gofakeit.Color(),
			WeightKg:  &weight,
		}
		if err := f.db.Create(pet).Error; err != nil {
			return nil, err
		}
		pets = append(pets, pet)
	}
	return pets, nil
}

// CreateWeightHistory persists n weight logs spread over past weeks, drifting
// around the pet's current weight.
func (f *Factory) CreateWeightHistory(pet *models.Pet, n int) error {
	base := 10.0
	if pet.WeightKg != nil {
		base = *pet.WeightKg
	}
	for i := n; i > 0; i-- {
		drift := (f.rand.Float64() - 0.5) * base * 0.1
		log := &models.WeightLog{
			PetID:    pet.ID,
			Date:     dateOnly(time.Now().AddDate(0, 0, -7*i)),
			WeightKg: roundTenth(base + drift),
		}
		if err := f.db.Create(log).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateDietHistory persists n diet logs over the past weeks.
func (f *Factory) CreateDietHistory(pet *models.Pet, n int) error {
	for i := 0; i < n; i++ {
		amount := roundTenth(50 + f.rand.Float64()*200)
		log := &models.DietLog{
			PetID:       pet.ID,
			Date:        dateOnly(time.Now().AddDate(0, 0, -f.rand.Intn(30))),
			Description: dietDescriptions[f.rand.Intn(len(dietDescriptions))],
			FoodAmount:  &amount,
			Unit:        models.UnitGrams,
			MealType:    mealTypes[f.rand.Intn(len(mealTypes))],
			FeedingTime: feedingTimes[f.rand.Intn(len(feedingTimes))],
		}
		if err := f.db.Create(log).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateVaccineHistory persists n vaccine logs; roughly half get a future
// next_due_date so upcoming-vaccine views have data.
func (f *Factory) CreateVaccineHistory(pet *models.Pet, n int) error {
	for i := 0; i < n; i++ {
		log := &models.VaccineLog{
			PetID:           pet.ID,
			Date:            dateOnly(time.Now().AddDate(0, -f.rand.Intn(12), 0)),
			VaccineType:     vaccineTypes[f.rand.Intn(len(vaccineTypes))],
			ReminderEnabled: true,
		}
		if f.rand.Intn(2) == 0 {
			due := dateOnly(time.Now().AddDate(0, f.rand.Intn(6)+1, 0))
			log.NextDueDate = &due
		}
		if err := f.db.Create(log).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateReminders persists n reminders mixing past-due and upcoming dates.
func (f *Factory) CreateReminders(pet *models.Pet, n int) error {
	for i := 0; i < n; i++ {
		offset := f.rand.Intn(30) - 10 // some overdue, some upcoming
		reminder := &models.Reminder{
			PetID:   pet.ID,
			Type:    []string{models.ReminderVaccine, models.ReminderWeight, models.ReminderGeneral}[f.rand.Intn(3)],
			DueDate: dateOnly(time.Now().AddDate(0, 0, offset)),
			Message: fmt.Sprintf("%s checkup for %s", gofakeit.AdjectiveDescriptive(), pet.Name),
		}
		if err := f.db.Create(reminder).Error; err != nil {
			return err
		}
	}
	return nil
}

func (f *Factory) breedFor(species string) string {
	switch species {
	case models.SpeciesDog:
		return dogBreeds[f.rand.Intn(len(dogBreeds))]
	case models.SpeciesCat:
		return catBreeds[f.rand.Intn(len(catBreeds))]
	default:
		return ""
	}
}

func (f *Factory) petWeight(species string) float64 {
	switch species {
	case models.SpeciesDog:
		return roundTenth(5 + f.rand.Float64()*35)
	case models.SpeciesCat:
		return roundTenth(3 + f.rand.Float64()*4)
	case models.SpeciesRabbit:
		return roundTenth(1 + f.rand.Float64()*2)
	default:
		return roundTenth(0.1 + f.rand.Float64()*0.9)
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func roundTenth(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
