package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pethealth/internal/config"
	"pethealth/internal/models"
	"pethealth/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReminderRepository is a mock of the ReminderRepository interface
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) GetByID(ctx context.Context, id uint) (*models.Reminder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reminder), args.Error(1)
}

func (m *MockReminderRepository) ListByPet(ctx context.Context, petID uint) ([]models.Reminder, error) {
	args := m.Called(ctx, petID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reminder), args.Error(1)
}

func (m *MockReminderRepository) ListByUser(ctx context.Context, userID uint) ([]models.Reminder, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reminder), args.Error(1)
}

func (m *MockReminderRepository) ListOverdue(ctx context.Context, userID uint, now time.Time) ([]models.Reminder, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reminder), args.Error(1)
}

func (m *MockReminderRepository) ListDueSoon(ctx context.Context, userID uint, now time.Time, window time.Duration) ([]models.Reminder, error) {
	args := m.Called(ctx, userID, now, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reminder), args.Error(1)
}

func (m *MockReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

func (m *MockReminderRepository) Update(ctx context.Context, reminder *models.Reminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

func (m *MockReminderRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newReminderTestApp(petRepo *MockPetRepository, reminderRepo *MockReminderRepository, userID uint) *fiber.App {
	s := &Server{
		config:       &config.Config{JWTSecret: "test_secret"},
		petRepo:      petRepo,
		reminderRepo: reminderRepo,
	}
	s.petService = service.NewPetService(petRepo)
	s.reminderService = service.NewReminderService(reminderRepo, s.petService)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	app.Get("/pets/:id/reminders", s.GetPetReminders)
	app.Get("/reminders", s.GetReminders)
	app.Post("/reminders", s.CreateReminder)
	app.Get("/reminders/due-soon", s.GetDueSoonReminders)
	app.Get("/reminders/overdue", s.GetOverdueReminders)
	app.Patch("/reminders/:id/mark-sent", s.MarkReminderSent)
	app.Delete("/reminders/:id", s.DeleteReminder)
	return app
}

func TestGetPetReminders_StatusFilters(t *testing.T) {
	past := time.Now().AddDate(0, 0, -3)
	future := time.Now().AddDate(0, 0, 3)
	all := []models.Reminder{
		{ID: 1, PetID: 2, Type: models.ReminderVaccine, DueDate: past, Sent: false},   // overdue
		{ID: 2, PetID: 2, Type: models.ReminderGeneral, DueDate: future, Sent: false}, // pending
		{ID: 3, PetID: 2, Type: models.ReminderGeneral, DueDate: past, Sent: true},    // sent
	}

	tests := []struct {
		name        string
		query       string
		expectedIDs []uint
	}{
		{"All", "", []uint{1, 2, 3}},
		{"Active", "?status=active", []uint{1, 2}},
		{"Pending", "?status=pending", []uint{2}},
		{"Overdue", "?status=overdue", []uint{1}},
		{"Sent", "?status=sent", []uint{3}},
		{"By Type", "?type=vaccine", []uint{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			petRepo := new(MockPetRepository)
			reminderRepo := new(MockReminderRepository)
			app := newReminderTestApp(petRepo, reminderRepo, 1)

			petRepo.On("GetByID", mock.Anything, uint(2)).
				Return(&models.Pet{ID: 2, UserID: 1}, nil)
			reminderRepo.On("ListByPet", mock.Anything, uint(2)).Return(all, nil)

			req := httptest.NewRequest(http.MethodGet, "/pets/2/reminders"+tt.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var body struct {
				Reminders []models.Reminder `json:"reminders"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

			ids := make([]uint, 0, len(body.Reminders))
			for _, r := range body.Reminders {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestGetPetReminders_InvalidStatus(t *testing.T) {
	petRepo := new(MockPetRepository)
	reminderRepo := new(MockReminderRepository)
	app := newReminderTestApp(petRepo, reminderRepo, 1)

	petRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.Pet{ID: 2, UserID: 1}, nil)

	req := httptest.NewRequest(http.MethodGet, "/pets/2/reminders?status=bogus", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateReminder(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		mockSetup      func(petRepo *MockPetRepository, reminderRepo *MockReminderRepository)
		expectedStatus int
	}{
		{
			name: "Success With Default Type",
			body: map[string]any{"pet_id": 2, "due_date": "2026-09-15", "message": "Annual checkup"},
			mockSetup: func(petRepo *MockPetRepository, reminderRepo *MockReminderRepository) {
				petRepo.On("GetByID", mock.Anything, uint(2)).
					Return(&models.Pet{ID: 2, UserID: 1}, nil)
				reminderRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Reminder) bool {
					return r.Type == models.ReminderGeneral && !r.Sent
				})).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing Message",
			body: map[string]any{"pet_id": 2, "due_date": "2026-09-15"},
			mockSetup: func(petRepo *MockPetRepository, reminderRepo *MockReminderRepository) {
				petRepo.On("GetByID", mock.Anything, uint(2)).
					Return(&models.Pet{ID: 2, UserID: 1}, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Bad Type",
			body: map[string]any{"pet_id": 2, "reminder_type": "party", "due_date": "2026-09-15", "message": "x"},
			mockSetup: func(petRepo *MockPetRepository, reminderRepo *MockReminderRepository) {
				petRepo.On("GetByID", mock.Anything, uint(2)).
					Return(&models.Pet{ID: 2, UserID: 1}, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			petRepo := new(MockPetRepository)
			reminderRepo := new(MockReminderRepository)
			app := newReminderTestApp(petRepo, reminderRepo, 1)
			tt.mockSetup(petRepo, reminderRepo)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/reminders", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			reminderRepo.AssertExpectations(t)
		})
	}
}

func TestMarkReminderSent_Idempotent(t *testing.T) {
	petRepo := new(MockPetRepository)
	reminderRepo := new(MockReminderRepository)
	app := newReminderTestApp(petRepo, reminderRepo, 1)

	petRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.Pet{ID: 2, UserID: 1}, nil)
	reminderRepo.On("GetByID", mock.Anything, uint(4)).
		Return(&models.Reminder{ID: 4, PetID: 2, Sent: true}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/reminders/4/mark-sent", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	// Already sent: no update issued.
	reminderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetDueSoonReminders(t *testing.T) {
	petRepo := new(MockPetRepository)
	reminderRepo := new(MockReminderRepository)
	app := newReminderTestApp(petRepo, reminderRepo, 1)

	reminderRepo.On("ListDueSoon", mock.Anything, uint(1), mock.Anything, 7*24*time.Hour).
		Return([]models.Reminder{{ID: 1, PetID: 2, Message: "Rabies booster"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/reminders/due-soon", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Reminders []models.Reminder `json:"reminders"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Reminders, 1)
	assert.Equal(t, "Rabies booster", body.Reminders[0].Message)
}
