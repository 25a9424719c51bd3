package service

import (
	"context"
	"errors"
	"testing"

	"pethealth/internal/models"
	"pethealth/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Function-backed repository stubs. Each method panics unless its function
// field is set, so tests only wire what they expect to be called.

type petRepoStub struct {
	getByIDFn    func(ctx context.Context, id uint) (*models.Pet, error)
	listByUserFn func(ctx context.Context, userID uint) ([]models.Pet, error)
	createFn     func(ctx context.Context, pet *models.Pet) error
	updateFn     func(ctx context.Context, pet *models.Pet) error
	deleteFn     func(ctx context.Context, id, userID uint) error
}

func (s *petRepoStub) GetByID(ctx context.Context, id uint) (*models.Pet, error) {
	return s.getByIDFn(ctx, id)
}
func (s *petRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Pet, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *petRepoStub) Create(ctx context.Context, pet *models.Pet) error {
	return s.createFn(ctx, pet)
}
func (s *petRepoStub) Update(ctx context.Context, pet *models.Pet) error {
	return s.updateFn(ctx, pet)
}
func (s *petRepoStub) Delete(ctx context.Context, id, userID uint) error {
	return s.deleteFn(ctx, id, userID)
}

// ownedPetStub returns a pet repo whose GetByID yields a pet owned by ownerID.
func ownedPetStub(ownerID uint) *petRepoStub {
	return &petRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Pet, error) {
			return &models.Pet{ID: id, UserID: ownerID, Name: "Rex", Species: models.SpeciesDog}, nil
		},
	}
}

type dietRepoStub struct {
	getByIDFn   func(ctx context.Context, id uint) (*models.DietLog, error)
	listByPetFn func(ctx context.Context, petID uint, filter repository.LogFilter) ([]models.DietLog, error)
	createFn    func(ctx context.Context, log *models.DietLog) error
	updateFn    func(ctx context.Context, log *models.DietLog) error
	deleteFn    func(ctx context.Context, id uint) error
}

func (s *dietRepoStub) GetByID(ctx context.Context, id uint) (*models.DietLog, error) {
	return s.getByIDFn(ctx, id)
}
func (s *dietRepoStub) ListByPet(ctx context.Context, petID uint, filter repository.LogFilter) ([]models.DietLog, error) {
	return s.listByPetFn(ctx, petID, filter)
}
func (s *dietRepoStub) Create(ctx context.Context, log *models.DietLog) error {
	return s.createFn(ctx, log)
}
func (s *dietRepoStub) Update(ctx context.Context, log *models.DietLog) error {
	return s.updateFn(ctx, log)
}
func (s *dietRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type vaccineRepoStub struct {
	getByIDFn   func(ctx context.Context, id uint) (*models.VaccineLog, error)
	listByPetFn func(ctx context.Context, petID uint, filter repository.LogFilter) ([]models.VaccineLog, error)
	createFn    func(ctx context.Context, log *models.VaccineLog) error
	updateFn    func(ctx context.Context, log *models.VaccineLog) error
	deleteFn    func(ctx context.Context, id uint) error
}

func (s *vaccineRepoStub) GetByID(ctx context.Context, id uint) (*models.VaccineLog, error) {
	return s.getByIDFn(ctx, id)
}
func (s *vaccineRepoStub) ListByPet(ctx context.Context, petID uint, filter repository.LogFilter) ([]models.VaccineLog, error) {
	return s.listByPetFn(ctx, petID, filter)
}
func (s *vaccineRepoStub) Create(ctx context.Context, log *models.VaccineLog) error {
	return s.createFn(ctx, log)
}
func (s *vaccineRepoStub) Update(ctx context.Context, log *models.VaccineLog) error {
	return s.updateFn(ctx, log)
}
func (s *vaccineRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type growthRepoStub struct {
	getByIDFn   func(ctx context.Context, id uint) (*models.GrowthLog, error)
	listByPetFn func(ctx context.Context, petID uint, filter repository.LogFilter) ([]models.GrowthLog, error)
	createFn    func(ctx context.Context, log *models.GrowthLog) error
	deleteFn    func(ctx context.Context, id uint) error
}

func (s *growthRepoStub) GetByID(ctx context.Context, id uint) (*models.GrowthLog, error) {
	return s.getByIDFn(ctx, id)
}
func (s *growthRepoStub) ListByPet(ctx context.Context, petID uint, filter repository.LogFilter) ([]models.GrowthLog, error) {
	return s.listByPetFn(ctx, petID, filter)
}
func (s *growthRepoStub) Create(ctx context.Context, log *models.GrowthLog) error {
	return s.createFn(ctx, log)
}
func (s *growthRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type userRepoStub struct {
	getByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn func(ctx context.Context, email string) (*models.User, error)
	createFn     func(ctx context.Context, user *models.User) error
	updateFn     func(ctx context.Context, user *models.User) error
	deleteFn     func(ctx context.Context, id uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

// assertValidationError fails the test unless err is an AppError with the
// validation code.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertNotFoundError fails the test unless err is an AppError with the
// not-found code.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
