package db

import (
	"github.com/solenedv/cadence/internal/models"
	"gorm.io/gorm"
)

type RoomRepository struct {
	database *gorm.DB
}

func NewRoomRepository(database *gorm.DB) *RoomRepository {
	return &RoomRepository{database: database}
}

func (repo *RoomRepository) List() ([]models.Room, error) {
	rooms := make([]models.Room, 0)
	if err := repo.database.Order("name ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (repo *RoomRepository) Create(room *models.Room) error {
	return repo.database.Create(room).Error
}
