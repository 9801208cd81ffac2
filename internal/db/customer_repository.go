package db

import (
	"time"

	"github.com/solenedv/cadence/internal/models"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	database *gorm.DB
}

func NewCustomerRepository(database *gorm.DB) *CustomerRepository {
	return &CustomerRepository{database: database}
}

// ListWithBirthdate returns every customer carrying a birthdate, ordered by
// arrival, for the birthday overlay.
func (repo *CustomerRepository) ListWithBirthdate() ([]models.Customer, error) {
	customers := make([]models.Customer, 0)
	if err := repo.database.
		Where("birthdate IS NOT NULL").
		Order("id ASC").
		Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// CountCreatedBetween counts customers created inside the half-open window.
// Feeds the weekly new-customer stat.
func (repo *CustomerRepository) CountCreatedBetween(from time.Time, to time.Time) (int, error) {
	var count int64
	if err := repo.database.Model(&models.Customer{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (repo *CustomerRepository) Create(customer *models.Customer) error {
	return repo.database.Create(customer).Error
}
