package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pethealth/internal/config"
	"pethealth/internal/models"
	"pethealth/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPetRepository is a mock of the PetRepository interface
type MockPetRepository struct {
	mock.Mock
}

func (m *MockPetRepository) GetByID(ctx context.Context, id uint) (*models.Pet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pet), args.Error(1)
}

func (m *MockPetRepository) ListByUser(ctx context.Context, userID uint) ([]models.Pet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Pet), args.Error(1)
}

func (m *MockPetRepository) Create(ctx context.Context, pet *models.Pet) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}

func (m *MockPetRepository) Update(ctx context.Context, pet *models.Pet) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}

func (m *MockPetRepository) Delete(ctx context.Context, id, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// newPetTestApp wires a Server with the mock pet repository and a fake
// authenticated user, mirroring what AuthRequired would set.
func newPetTestApp(mockRepo *MockPetRepository, userID uint) (*fiber.App, *Server) {
	s := &Server{
		config:  &config.Config{JWTSecret: "test_secret"},
		petRepo: mockRepo,
	}
	s.petService = service.NewPetService(mockRepo)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	app.Get("/pets", s.GetPets)
	app.Post("/pets", s.CreatePet)
	app.Get("/pets/:id", s.GetPet)
	app.Put("/pets/:id", s.UpdatePet)
	app.Delete("/pets/:id", s.DeletePet)
	return app, s
}

func TestGetPets(t *testing.T) {
	mockRepo := new(MockPetRepository)
	app, _ := newPetTestApp(mockRepo, 1)

	mockRepo.On("ListByUser", mock.Anything, uint(1)).Return([]models.Pet{
		{ID: 1, UserID: 1, Name: "Rex", Species: models.SpeciesDog},
		{ID: 2, UserID: 1, Name: "Whiskers", Species: models.SpeciesCat},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/pets", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Pets []models.Pet `json:"pets"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Pets, 2)
	assert.Equal(t, "Rex", body.Pets[0].Name)
}

func TestGetPet_OwnershipHidesOtherUsersPets(t *testing.T) {
	mockRepo := new(MockPetRepository)
	app, _ := newPetTestApp(mockRepo, 1)

	// Pet 5 belongs to user 2; user 1 must get a 404, not a 403.
	mockRepo.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Pet{ID: 5, UserID: 2, Name: "Hidden"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/pets/5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreatePet(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		mockSetup      func(repo *MockPetRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]any{
				"name":       "Rex",
				"species":    "dog",
				"breed":      "Labrador",
				"birth_date": "2020-03-15",
				"weight_kg":  24.5,
			},
			mockSetup: func(repo *MockPetRepository) {
				repo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Name",
			body:           map[string]any{"species": "dog"},
			mockSetup:      func(repo *MockPetRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid Species",
			body:           map[string]any{"name": "Rex", "species": "dinosaur"},
			mockSetup:      func(repo *MockPetRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid Birth Date",
			body:           map[string]any{"name": "Rex", "species": "dog", "birth_date": "15/03/2020"},
			mockSetup:      func(repo *MockPetRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Negative Weight",
			body:           map[string]any{"name": "Rex", "species": "dog", "weight_kg": -2.0},
			mockSetup:      func(repo *MockPetRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Non-Numeric Weight",
			body:           map[string]any{"name": "Rex", "species": "dog", "weight_kg": "heavy"},
			mockSetup:      func(repo *MockPetRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPetRepository)
			app, _ := newPetTestApp(mockRepo, 1)
			tt.mockSetup(mockRepo)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/pets", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCreatePet_AbsentWeightIsNull(t *testing.T) {
	mockRepo := new(MockPetRepository)
	app, _ := newPetTestApp(mockRepo, 1)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	body, _ := json.Marshal(map[string]any{"name": "Rex", "species": "dog"})
	req := httptest.NewRequest(http.MethodPost, "/pets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var envelope struct {
		Pet map[string]json.RawMessage `json:"pet"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "null", string(envelope.Pet["weight_kg"]))
}

func TestUpdatePet(t *testing.T) {
	mockRepo := new(MockPetRepository)
	app, _ := newPetTestApp(mockRepo, 1)

	mockRepo.On("GetByID", mock.Anything, uint(3)).
		Return(&models.Pet{ID: 3, UserID: 1, Name: "Rex", Species: models.SpeciesDog, Gender: models.GenderUnknown}, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Pet) bool {
		return p.Name == "Rexford" && p.Species == models.SpeciesDog
	})).Return(nil)

	body, _ := json.Marshal(map[string]any{"name": "Rexford"})
	req := httptest.NewRequest(http.MethodPut, "/pets/3", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockRepo.AssertExpectations(t)
}

func TestDeletePet(t *testing.T) {
	mockRepo := new(MockPetRepository)
	app, _ := newPetTestApp(mockRepo, 1)

	mockRepo.On("GetByID", mock.Anything, uint(3)).
		Return(&models.Pet{ID: 3, UserID: 1, Name: "Rex"}, nil)
	mockRepo.On("Delete", mock.Anything, uint(3), uint(1)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/pets/3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockRepo.AssertExpectations(t)
}
