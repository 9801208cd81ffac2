package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/solenedv/cadence/internal/models"
	"github.com/solenedv/cadence/internal/services"
)

// ListEvents exposes the raw fetch window: persisted events only, no
// overlays, no display derivation.
func (handler *Handler) ListEvents(c *fiber.Ctx) error {
	now := time.Now()
	from := services.ParseDateKey(c.Query("from"), now, handler.location)
	to := services.ParseDateKey(c.Query("to"), now, handler.location)
	if !services.DayStart(from, handler.location).Before(services.DayStart(to, handler.location)) {
		return apiError(c, fiber.StatusBadRequest, "from must precede to")
	}

	events, err := handler.repos.Events.ListByRange(
		services.DayStart(from, handler.location),
		services.DayStart(to, handler.location),
	)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load events")
	}
	return c.JSON(events)
}

type createEventInput struct {
	Title           string     `json:"title"`
	Icon            string     `json:"icon"`
	Color           string     `json:"color"`
	StartsAt        time.Time  `json:"startsAt"`
	EndsAt          *time.Time `json:"endsAt"`
	DurationMinutes int        `json:"durationMinutes"`
	RoomID          *uint      `json:"roomId"`
	InstructorID    *uint      `json:"instructorId"`
	Capacity        int        `json:"capacity"`
	RemoteCapacity  int        `json:"remoteCapacity"`
	PriceCents      int        `json:"priceCents"`
}

// CreateEvent persists one concrete occurrence. Recurring series are expanded
// by the caller; this service only stores instances.
func (handler *Handler) CreateEvent(c *fiber.Ctx) error {
	input := createEventInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return apiError(c, fiber.StatusBadRequest, "title is required")
	}
	if input.StartsAt.IsZero() {
		return apiError(c, fiber.StatusBadRequest, "startsAt is required")
	}
	if input.EndsAt != nil && !input.EndsAt.After(input.StartsAt) {
		return apiError(c, fiber.StatusBadRequest, "endsAt must follow startsAt")
	}

	event := models.ScheduleEvent{
		Title:           title,
		Icon:            input.Icon,
		Color:           input.Color,
		StartsAt:        input.StartsAt,
		EndsAt:          input.EndsAt,
		DurationMinutes: input.DurationMinutes,
		RoomID:          input.RoomID,
		InstructorID:    input.InstructorID,
		Capacity:        input.Capacity,
		RemoteCapacity:  input.RemoteCapacity,
		PriceCents:      input.PriceCents,
		Status:          models.StatusScheduled,
	}
	if err := handler.repos.Events.Create(&event); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create event")
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

type rescheduleInput struct {
	NewStartsAt  time.Time  `json:"newStartsAt"`
	NewEndsAt    *time.Time `json:"newEndsAt"`
	RoomID       *uint      `json:"roomId"`
	InstructorID *uint      `json:"instructorId"`
}

// RescheduleEvent is the direct commit path of the persistence contract.
// There is no optimistic patching: callers re-fetch the calendar afterwards.
func (handler *Handler) RescheduleEvent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid event id")
	}

	input := rescheduleInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if input.NewStartsAt.IsZero() {
		return apiError(c, fiber.StatusBadRequest, "newStartsAt is required")
	}

	event, err := handler.repos.Events.FindByID(uint(id))
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "event not found")
	}

	request := services.RescheduleRequest{
		EventID:      event.ID,
		NewStartsAt:  input.NewStartsAt,
		NewEndsAt:    input.NewEndsAt,
		RoomID:       event.RoomID,
		InstructorID: event.InstructorID,
	}
	if input.RoomID != nil {
		request.RoomID = input.RoomID
	}
	if input.InstructorID != nil {
		request.InstructorID = input.InstructorID
	}

	if err := handler.repos.Events.Reschedule(request); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "reschedule failed")
	}
	return c.JSON(fiber.Map{"ok": true, "eventId": event.ID})
}
