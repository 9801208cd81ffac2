package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	calendar := api.Group("/calendar", handler.AuthRequired)
	calendar.Get("", handler.ShowCalendar)
	calendar.Get("/range", handler.ShiftCalendarRange)

	events := api.Group("/events", handler.AuthRequired)
	events.Get("", handler.ListEvents)
	events.Post("", handler.CreateEvent)
	events.Post("/:id/reschedule", handler.RescheduleEvent)

	api.Get("/rooms", handler.AuthRequired, handler.ListRooms)

	drag := api.Group("/drag", handler.AuthRequired)
	drag.Post("/start", handler.StartDrag)
	drag.Post("/move", handler.MoveDrag)
	drag.Post("/drop", handler.DropDrag)
	drag.Post("/cancel", handler.CancelDrag)
}
