package db

import (
	"time"

	"github.com/solenedv/cadence/internal/models"
	"gorm.io/gorm"
)

type HolidayRepository struct {
	database *gorm.DB
}

func NewHolidayRepository(database *gorm.DB) *HolidayRepository {
	return &HolidayRepository{database: database}
}

// ListBetween returns studio closures falling inside the half-open window.
func (repo *HolidayRepository) ListBetween(from time.Time, to time.Time) ([]models.Holiday, error) {
	holidays := make([]models.Holiday, 0)
	if err := repo.database.
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC").
		Find(&holidays).Error; err != nil {
		return nil, err
	}
	return holidays, nil
}

func (repo *HolidayRepository) Create(holiday *models.Holiday) error {
	return repo.database.Create(holiday).Error
}
