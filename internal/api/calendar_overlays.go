package api

import (
	"time"

	"github.com/solenedv/cadence/internal/models"
	"github.com/solenedv/cadence/internal/services"
)

// overlayEvents synthesizes the all-day holiday and birthday instances for a
// fetch window. The results live only for one engine pass; they are never
// written back to the store.
func (handler *Handler) overlayEvents(window services.ViewRange) ([]models.ScheduleEvent, error) {
	fromDay := services.DayStart(window.From, handler.location)
	toDay := services.DayStart(window.To, handler.location)

	holidays, err := handler.repos.Holidays.ListBetween(fromDay, toDay)
	if err != nil {
		return nil, err
	}

	overlays := make([]models.ScheduleEvent, 0, len(holidays))
	for _, holiday := range holidays {
		overlays = append(overlays, models.ScheduleEvent{
			Title:     holiday.Name,
			StartsAt:  services.NoonOf(holiday.Date, handler.location),
			Status:    models.StatusScheduled,
			IsHoliday: true,
		})
	}

	customers, err := handler.repos.Customers.ListWithBirthdate()
	if err != nil {
		return nil, err
	}
	overlays = append(overlays, birthdayOverlays(customers, window, handler.location)...)

	return overlays, nil
}

// birthdayOverlays projects each customer's birthday onto every year the
// window touches. The list window spans a year, so a single projection per
// customer is not enough.
func birthdayOverlays(customers []models.Customer, window services.ViewRange, location *time.Location) []models.ScheduleEvent {
	overlays := make([]models.ScheduleEvent, 0)
	for _, customer := range customers {
		if customer.Birthdate == nil {
			continue
		}
		birth := customer.Birthdate.In(location)
		for year := window.From.Year(); year <= window.To.Year(); year++ {
			occasion := time.Date(year, birth.Month(), birth.Day(), 12, 0, 0, 0, location)
			key := services.DateKeyAt(occasion, location)
			if !window.Contains(key) {
				continue
			}
			overlays = append(overlays, models.ScheduleEvent{
				Title:        customer.FullName,
				StartsAt:     occasion,
				Status:       models.StatusScheduled,
				IsBirthday:   true,
				BirthdayName: customer.FullName,
				ContactEmail: customer.Email,
				ContactPhone: customer.Phone,
			})
		}
	}
	return overlays
}
