package api

import "github.com/gofiber/fiber/v2"

// ListRooms is a read-only reference listing for the frontend's room picker.
func (handler *Handler) ListRooms(c *fiber.Ctx) error {
	rooms, err := handler.repos.Rooms.List()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load rooms")
	}
	return c.JSON(rooms)
}
