package db

import (
	"fmt"
	"time"

	"github.com/solenedv/cadence/internal/models"
	"github.com/solenedv/cadence/internal/services"
	"gorm.io/gorm"
)

type EventRepository struct {
	database *gorm.DB
}

func NewEventRepository(database *gorm.DB) *EventRepository {
	return &EventRepository{database: database}
}

// ListByRange returns persisted events starting inside the half-open window,
// with room and instructor associations loaded for display and filtering.
func (repo *EventRepository) ListByRange(from time.Time, to time.Time) ([]models.ScheduleEvent, error) {
	events := make([]models.ScheduleEvent, 0)
	if err := repo.database.
		Preload("Room").
		Preload("Instructor").
		Where("starts_at >= ? AND starts_at < ?", from, to).
		Order("starts_at ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *EventRepository) FindByID(id uint) (models.ScheduleEvent, error) {
	event := models.ScheduleEvent{}
	if err := repo.database.
		Preload("Room").
		Preload("Instructor").
		First(&event, id).Error; err != nil {
		return models.ScheduleEvent{}, err
	}
	return event, nil
}

func (repo *EventRepository) Create(event *models.ScheduleEvent) error {
	return repo.database.Create(event).Error
}

// Reschedule implements services.Rescheduler: it moves an event's start (and
// end, when duration-preserving) while keeping room and instructor unchanged.
func (repo *EventRepository) Reschedule(request services.RescheduleRequest) error {
	updates := map[string]interface{}{
		"starts_at":     request.NewStartsAt,
		"ends_at":       request.NewEndsAt,
		"room_id":       request.RoomID,
		"instructor_id": request.InstructorID,
	}

	result := repo.database.Model(&models.ScheduleEvent{}).
		Where("id = ?", request.EventID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("reschedule event %d: not found", request.EventID)
	}
	return nil
}
