package client

import (
	"context"
	"sync"
	"sync/atomic"

	"pethealth/internal/models"
)

// PetProfile is the merged view a profile screen renders for one pet.
// Sections that failed to load carry their error and an empty slice, so a
// partial profile still renders.
type PetProfile struct {
	Pet         *models.Pet
	WeightLogs  []models.WeightLog
	DietLogs    []models.DietLog
	VaccineLogs []models.VaccineLog

	WeightErr  error
	DietErr    error
	VaccineErr error
}

// ErrStale is returned when a newer Load superseded this one before it
// finished.
var ErrStale = &APIError{Status: 0, Message: "profile load superseded"}

// ProfileLoader fetches pet profiles. Concurrent Loads race safely: only the
// most recently started Load returns data, earlier in-flight ones return
// ErrStale so a slow response for pet A can never overwrite pet B on screen.
type ProfileLoader struct {
	client     *Client
	generation atomic.Uint64
}

// NewProfileLoader wraps c in a loader.
func NewProfileLoader(c *Client) *ProfileLoader {
	return &ProfileLoader{client: c}
}

// Load fetches the pet and its three log collections in parallel. The pet
// fetch failing fails the whole load; a log section failing only marks that
// section's error.
func (l *ProfileLoader) Load(ctx context.Context, petID uint) (*PetProfile, error) {
	gen := l.generation.Add(1)

	pet, err := l.client.GetPet(ctx, petID)
	if err != nil {
		return nil, err
	}

	profile := &PetProfile{Pet: pet}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		profile.WeightLogs, profile.WeightErr = l.client.ListWeightLogs(ctx, petID, ListOptions{})
	}()
	go func() {
		defer wg.Done()
		profile.DietLogs, profile.DietErr = l.client.ListDietLogs(ctx, petID, ListOptions{})
	}()
	go func() {
		defer wg.Done()
		profile.VaccineLogs, profile.VaccineErr = l.client.ListVaccineLogs(ctx, petID, ListOptions{})
	}()
	wg.Wait()

	if l.generation.Load() != gen {
		return nil, ErrStale
	}
	return profile, nil
}
