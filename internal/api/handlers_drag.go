package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/solenedv/cadence/internal/services"
)

type dragStartInput struct {
	EventID     uint    `json:"eventId"`
	GrabOffsetY float64 `json:"grabOffsetY"`
}

type dragMoveInput struct {
	GestureID string               `json:"gestureId"`
	DateKey   string               `json:"dateKey"`
	PointerY  float64              `json:"pointerY"`
	Metrics   services.GridMetrics `json:"metrics"`
}

type dragFinishInput struct {
	GestureID string `json:"gestureId"`
}

// StartDrag begins a gesture for a persisted, unlocked event.
func (handler *Handler) StartDrag(c *fiber.Ctx) error {
	input := dragStartInput{}
	if err := c.BodyParser(&input); err != nil || input.EventID == 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	event, err := handler.repos.Events.FindByID(input.EventID)
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "event not found")
	}

	display := services.DisplayEventOf(event, time.Now(), handler.location)
	controller := handler.drags.controllerFor(currentUser(c).ID)
	gestureID, err := controller.Begin(display, input.GrabOffsetY)
	if err != nil {
		return dragError(c, err)
	}

	return c.JSON(fiber.Map{
		"gestureId":          gestureID,
		"state":              controller.State().String(),
		"startOffsetMinutes": display.StartOffsetMinutes,
		"durationMinutes":    display.DurationMinutes,
	})
}

// MoveDrag reports the pointer over a day cell and returns the snapped,
// clamped candidate drop position.
func (handler *Handler) MoveDrag(c *fiber.Ctx) error {
	input := dragMoveInput{}
	if err := c.BodyParser(&input); err != nil || input.GestureID == "" || input.DateKey == "" {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	controller := handler.drags.controllerFor(currentUser(c).ID)
	candidate, err := controller.Hover(input.GestureID, input.DateKey, input.PointerY, input.Metrics)
	if err != nil {
		return dragError(c, err)
	}

	return c.JSON(fiber.Map{
		"state":     controller.State().String(),
		"candidate": candidate,
	})
}

// DropDrag commits the hovered candidate when it changed day or time. The
// client re-fetches the calendar afterwards; nothing is patched locally.
func (handler *Handler) DropDrag(c *fiber.Ctx) error {
	input := dragFinishInput{}
	if err := c.BodyParser(&input); err != nil || input.GestureID == "" {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	controller := handler.drags.controllerFor(currentUser(c).ID)
	committed, err := controller.Drop(input.GestureID)
	if err != nil {
		return dragError(c, err)
	}

	return c.JSON(fiber.Map{
		"committed": committed,
		"state":     controller.State().String(),
	})
}

// CancelDrag discards the gesture with no side effects.
func (handler *Handler) CancelDrag(c *fiber.Ctx) error {
	input := dragFinishInput{}
	if err := c.BodyParser(&input); err != nil || input.GestureID == "" {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	controller := handler.drags.controllerFor(currentUser(c).ID)
	if err := controller.Cancel(input.GestureID); err != nil {
		return dragError(c, err)
	}
	return c.JSON(fiber.Map{"state": controller.State().String()})
}

func dragError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrDragLocked):
		return apiError(c, fiber.StatusUnprocessableEntity, "event cannot be moved")
	case errors.Is(err, services.ErrDragActive), errors.Is(err, services.ErrDragCommitting):
		return apiError(c, fiber.StatusConflict, "another drag is already active")
	case errors.Is(err, services.ErrDragIdle), errors.Is(err, services.ErrDragGesture):
		return apiError(c, fiber.StatusConflict, "no matching drag gesture")
	case errors.Is(err, services.ErrDragGeometry):
		return apiError(c, fiber.StatusUnprocessableEntity, "grid geometry unavailable; drag cancelled")
	default:
		return apiError(c, fiber.StatusInternalServerError, "reschedule failed")
	}
}
