package services

import "time"

// WeekStats summarizes the week containing "now", regardless of which view
// mode the console is showing.
type WeekStats struct {
	SessionCount      int    `json:"sessionCount"`
	RegistrationCount int    `json:"registrationCount"`
	NewCustomerCount  int    `json:"newCustomerCount"`
	TopSessionTitle   string `json:"topSessionTitle"`
	TopSessionCount   int    `json:"topSessionCount"`
}

// NewCustomerProbe reports how many customer records were created inside the
// half-open window. The customer store lives outside the engine, so the count
// is injected rather than derived.
type NewCustomerProbe func(from, to time.Time) int

// BuildWeekStats folds the current week's buckets into aggregate numbers.
// Cancelled sessions and all-day overlays never count. The strongest session
// is the one with the most registrations; the first seen wins ties.
func BuildWeekStats(buckets map[string][]DisplayEvent, now time.Time, weekStart time.Weekday, location *time.Location, probe NewCustomerProbe) WeekStats {
	week := RangeFor(ViewWeek, NoonOf(now, location), weekStart, location)

	stats := WeekStats{}
	day := week.From
	for day.Before(week.To) {
		key := DateKeyAt(day, location)
		for _, event := range buckets[key] {
			if event.IsAllDay || event.IsCancelled {
				continue
			}
			stats.SessionCount++
			registrations := event.BookedCount + event.RemoteBookedCount
			stats.RegistrationCount += registrations
			if stats.SessionCount == 1 || registrations > stats.TopSessionCount {
				stats.TopSessionTitle = event.Title
				stats.TopSessionCount = registrations
			}
		}
		day = AddDays(day, 1, location)
	}

	if probe != nil {
		stats.NewCustomerCount = probe(DayStart(week.From, location), DayStart(week.To, location))
	}
	return stats
}
