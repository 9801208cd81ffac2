package api

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/solenedv/cadence/internal/models"
	"github.com/solenedv/cadence/internal/services"
)

// ShowCalendar runs the full view pipeline for one request: resolve mode and
// anchor, compute the fetch window, load persisted events plus overlays, and
// assemble the mode-specific view model.
func (handler *Handler) ShowCalendar(c *fiber.Ctx) error {
	now := time.Now()
	mode := services.NormalizeViewMode(c.Query("mode"))
	anchor := services.ParseDateKey(c.Query("date"), now, handler.location)

	window := services.RangeFor(mode, anchor, handler.weekStart, handler.location)
	events, err := handler.eventsForWindow(window)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load calendar")
	}

	view := services.BuildCalendarView(events, services.CalendarViewOptions{
		Mode:             mode,
		Anchor:           anchor,
		Location:         handler.location,
		WeekStart:        handler.weekStart,
		Search:           c.Query("q"),
		Now:              now,
		NewCustomerProbe: handler.newCustomerProbe(),
	})
	handler.refreshWeekStats(&view, window, now)

	return c.JSON(view)
}

// refreshWeekStats recomputes the stats block from a dedicated fetch when the
// week containing now falls outside the view's window, as it does for a month
// or day view anchored away from today. A failed fetch keeps the zero stats
// rather than failing the calendar.
func (handler *Handler) refreshWeekStats(view *services.CalendarViewModel, window services.ViewRange, now time.Time) {
	week := services.RangeFor(services.ViewWeek, services.NoonOf(now, handler.location), handler.weekStart, handler.location)
	lastDayKey := services.DateKeyAt(services.AddDays(week.From, 6, handler.location), handler.location)
	if window.Contains(week.FromKey) && window.Contains(lastDayKey) {
		return
	}

	events, err := handler.eventsForWindow(week)
	if err != nil {
		log.Printf("week stats fetch failed: %v", err)
		return
	}
	buckets := services.BucketEvents(events, now, handler.location)
	view.Stats = services.BuildWeekStats(buckets, now, handler.weekStart, handler.location, handler.newCustomerProbe())
}

// ShiftCalendarRange resolves prev/next navigation: it shifts the anchor by
// one mode unit and reports the new fetch window.
func (handler *Handler) ShiftCalendarRange(c *fiber.Ctx) error {
	now := time.Now()
	mode := services.NormalizeViewMode(c.Query("mode"))
	anchor := services.ParseDateKey(c.Query("date"), now, handler.location)

	direction := 0
	if raw := c.Query("shift"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < -1 || parsed > 1 {
			return apiError(c, fiber.StatusBadRequest, "shift must be -1, 0, or 1")
		}
		direction = parsed
	}

	shifted := anchor
	if direction != 0 {
		shifted = services.ShiftAnchor(mode, anchor, direction, handler.location)
	}
	window := services.RangeFor(mode, shifted, handler.weekStart, handler.location)

	return c.JSON(fiber.Map{
		"mode":   mode,
		"anchor": services.DateKeyAt(shifted, handler.location),
		"from":   window.FromKey,
		"to":     window.ToKey,
	})
}

// eventsForWindow fetches persisted events for the half-open window and
// appends the synthetic all-day overlays.
func (handler *Handler) eventsForWindow(window services.ViewRange) ([]models.ScheduleEvent, error) {
	fromDay := services.DayStart(window.From, handler.location)
	toDay := services.DayStart(window.To, handler.location)

	events, err := handler.repos.Events.ListByRange(fromDay, toDay)
	if err != nil {
		return nil, err
	}

	overlays, err := handler.overlayEvents(window)
	if err != nil {
		return nil, err
	}
	return append(events, overlays...), nil
}

func (handler *Handler) newCustomerProbe() services.NewCustomerProbe {
	return func(from, to time.Time) int {
		count, err := handler.repos.Customers.CountCreatedBetween(from, to)
		if err != nil {
			log.Printf("new customer probe failed: %v", err)
			return 0
		}
		return count
	}
}
