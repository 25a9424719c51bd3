package service

import (
	"context"
	"strings"
	"testing"

	"pethealth/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPetService_CreatePet_Validation(t *testing.T) {
	t.Parallel()

	base := CreatePetInput{UserID: 1, Name: "Rex", Species: models.SpeciesDog}

	tests := []struct {
		name   string
		mutate func(in *CreatePetInput)
	}{
		{"blank name", func(in *CreatePetInput) { in.Name = "   " }},
		{"name too long", func(in *CreatePetInput) { in.Name = strings.Repeat("x", 101) }},
		{"bad species", func(in *CreatePetInput) { in.Species = "dragon" }},
		{"bad gender", func(in *CreatePetInput) { in.Gender = "yes" }},
		{"bad birth date", func(in *CreatePetInput) { in.BirthDate = "yesterday" }},
		{"negative weight", func(in *CreatePetInput) { in.WeightKg = floatPtr(-3) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewPetService(&petRepoStub{})
			in := base
			tt.mutate(&in)
			_, err := svc.CreatePet(context.Background(), in)
			assertValidationError(t, err)
		})
	}
}

func TestPetService_CreatePet_DefaultsGender(t *testing.T) {
	t.Parallel()

	repo := &petRepoStub{createFn: func(_ context.Context, _ *models.Pet) error { return nil }}
	svc := NewPetService(repo)

	pet, err := svc.CreatePet(context.Background(), CreatePetInput{
		UserID: 1, Name: "Rex", Species: models.SpeciesDog,
	})
	require.NoError(t, err)
	assert.Equal(t, models.GenderUnknown, pet.Gender)
	assert.Nil(t, pet.WeightKg)
}

func TestPetService_GetOwnedPet_HidesOtherUsers(t *testing.T) {
	t.Parallel()

	svc := NewPetService(ownedPetStub(2))
	_, err := svc.GetOwnedPet(context.Background(), 5, 1)
	assertNotFoundError(t, err)
}

func TestPetService_UpdatePet_ClearWeight(t *testing.T) {
	t.Parallel()

	weight := 24.5
	repo := &petRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Pet, error) {
			return &models.Pet{ID: id, UserID: 1, Name: "Rex", Species: models.SpeciesDog,
				Gender: models.GenderUnknown, WeightKg: &weight}, nil
		},
		updateFn: func(_ context.Context, _ *models.Pet) error { return nil },
	}
	svc := NewPetService(repo)

	pet, err := svc.UpdatePet(context.Background(), UpdatePetInput{
		UserID: 1, PetID: 3, ClearWeight: true,
	})
	require.NoError(t, err)
	assert.Nil(t, pet.WeightKg)
}
