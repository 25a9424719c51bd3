package repository

import (
	"context"
	"errors"
	"time"

	"pethealth/internal/models"

	"gorm.io/gorm"
)

// LogFilter narrows log list queries. Zero values mean no constraint.
type LogFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	MealType  string // diet logs only
	Limit     int
}

func (f LogFilter) apply(q *gorm.DB) *gorm.DB {
	if f.StartDate != nil {
		q = q.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", *f.EndDate)
	}
	if f.MealType != "" {
		q = q.Where("meal_type = ?", f.MealType)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	return q
}

// WeightLogRepository defines persistence operations for weight logs.
type WeightLogRepository interface {
	GetByID(ctx context.Context, id uint) (*models.WeightLog, error)
	ListByPet(ctx context.Context, petID uint, filter LogFilter) ([]models.WeightLog, error)
	Create(ctx context.Context, log *models.WeightLog) error
	Update(ctx context.Context, log *models.WeightLog) error
	Delete(ctx context.Context, id uint) error
}

type weightLogRepository struct {
	db *gorm.DB
}

// NewWeightLogRepository returns a new WeightLogRepository implementation.
func NewWeightLogRepository(db *gorm.DB) WeightLogRepository {
	return &weightLogRepository{db: db}
}

func (r *weightLogRepository) GetByID(ctx context.Context, id uint) (*models.WeightLog, error) {
	var log models.WeightLog
	if err := r.db.WithContext(ctx).First(&log, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Weight log", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &log, nil
}

func (r *weightLogRepository) ListByPet(ctx context.Context, petID uint, filter LogFilter) ([]models.WeightLog, error) {
	var logs []models.WeightLog
	q := filter.apply(r.db.WithContext(ctx).Where("pet_id = ?", petID))
	if err := q.Order("date DESC").Find(&logs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}

func (r *weightLogRepository) Create(ctx context.Context, log *models.WeightLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *weightLogRepository) Update(ctx context.Context, log *models.WeightLog) error {
	if err := r.db.WithContext(ctx).Save(log).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *weightLogRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.WeightLog{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// DietLogRepository defines persistence operations for diet logs.
type DietLogRepository interface {
	GetByID(ctx context.Context, id uint) (*models.DietLog, error)
	ListByPet(ctx context.Context, petID uint, filter LogFilter) ([]models.DietLog, error)
	Create(ctx context.Context, log *models.DietLog) error
	Update(ctx context.Context, log *models.DietLog) error
	Delete(ctx context.Context, id uint) error
}

type dietLogRepository struct {
	db *gorm.DB
}

// NewDietLogRepository returns a new DietLogRepository implementation.
func NewDietLogRepository(db *gorm.DB) DietLogRepository {
	return &dietLogRepository{db: db}
}

func (r *dietLogRepository) GetByID(ctx context.Context, id uint) (*models.DietLog, error) {
	var log models.DietLog
	if err := r.db.WithContext(ctx).First(&log, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Diet log", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &log, nil
}

func (r *dietLogRepository) ListByPet(ctx context.Context, petID uint, filter LogFilter) ([]models.DietLog, error) {
	var logs []models.DietLog
	q := filter.apply(r.db.WithContext(ctx).Where("pet_id = ?", petID))
	if err := q.Order("date DESC, feeding_time DESC").Find(&logs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}

func (r *dietLogRepository) Create(ctx context.Context, log *models.DietLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *dietLogRepository) Update(ctx context.Context, log *models.DietLog) error {
	if err := r.db.WithContext(ctx).Save(log).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *dietLogRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.DietLog{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// VaccineLogRepository defines persistence operations for vaccine logs.
type VaccineLogRepository interface {
	GetByID(ctx context.Context, id uint) (*models.VaccineLog, error)
	ListByPet(ctx context.Context, petID uint, filter LogFilter) ([]models.VaccineLog, error)
	Create(ctx context.Context, log *models.VaccineLog) error
	Update(ctx context.Context, log *models.VaccineLog) error
	Delete(ctx context.Context, id uint) error
}

type vaccineLogRepository struct {
	db *gorm.DB
}

// NewVaccineLogRepository returns a new VaccineLogRepository implementation.
func NewVaccineLogRepository(db *gorm.DB) VaccineLogRepository {
	return &vaccineLogRepository{db: db}
}

func (r *vaccineLogRepository) GetByID(ctx context.Context, id uint) (*models.VaccineLog, error) {
	var log models.VaccineLog
	if err := r.db.WithContext(ctx).First(&log, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Vaccine log", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &log, nil
}

func (r *vaccineLogRepository) ListByPet(ctx context.Context, petID uint, filter LogFilter) ([]models.VaccineLog, error) {
	var logs []models.VaccineLog
	q := filter.apply(r.db.WithContext(ctx).Where("pet_id = ?", petID))
	if err := q.Order("date DESC").Find(&logs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}

func (r *vaccineLogRepository) Create(ctx context.Context, log *models.VaccineLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *vaccineLogRepository) Update(ctx context.Context, log *models.VaccineLog) error {
	if err := r.db.WithContext(ctx).Save(log).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *vaccineLogRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.VaccineLog{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GrowthLogRepository defines persistence operations for growth logs.
type GrowthLogRepository interface {
	GetByID(ctx context.Context, id uint) (*models.GrowthLog, error)
	ListByPet(ctx context.Context, petID uint, filter LogFilter) ([]models.GrowthLog, error)
	Create(ctx context.Context, log *models.GrowthLog) error
	Delete(ctx context.Context, id uint) error
}

type growthLogRepository struct {
	db *gorm.DB
}

// NewGrowthLogRepository returns a new GrowthLogRepository implementation.
func NewGrowthLogRepository(db *gorm.DB) GrowthLogRepository {
	return &growthLogRepository{db: db}
}

func (r *growthLogRepository) GetByID(ctx context.Context, id uint) (*models.GrowthLog, error) {
	var log models.GrowthLog
	if err := r.db.WithContext(ctx).First(&log, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Growth log", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &log, nil
}

func (r *growthLogRepository) ListByPet(ctx context.Context, petID uint, filter LogFilter) ([]models.GrowthLog, error) {
	var logs []models.GrowthLog
	q := filter.apply(r.db.WithContext(ctx).Where("pet_id = ?", petID))
	if err := q.Order("date DESC").Find(&logs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}

func (r *growthLogRepository) Create(ctx context.Context, log *models.GrowthLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *growthLogRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.GrowthLog{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
