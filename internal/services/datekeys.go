package services

import (
	"strings"
	"time"
)

// DateKeyLayout is the canonical calendar-day key used across the engine.
const DateKeyLayout = "2006-01-02"

const legacyDateLayout = "02/01/2006"

// NoonOf anchors an instant to noon of its wall-clock day in the given zone.
// Calendar arithmetic runs on noon anchors so that DST transitions at
// midnight never shift a date by a day.
func NoonOf(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.In(location).Date()
	return time.Date(year, month, day, 12, 0, 0, 0, location)
}

// DayStart returns midnight of the instant's wall-clock day in the given zone.
func DayStart(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.In(location).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DateKeyAt converts an instant to the zone's calendar-day key.
func DateKeyAt(instant time.Time, location *time.Location) string {
	if location == nil {
		location = time.UTC
	}
	return instant.In(location).Format(DateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD or DD/MM/YYYY date string into a
// noon-anchored local date. Unparseable input falls back to today rather
// than failing, so navigation always lands somewhere renderable.
func ParseDateKey(raw string, now time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" {
		if parsed, err := time.ParseInLocation(DateKeyLayout, trimmed, location); err == nil {
			return NoonOf(parsed, location)
		}
		if parsed, err := time.ParseInLocation(legacyDateLayout, trimmed, location); err == nil {
			return NoonOf(parsed, location)
		}
	}
	return NoonOf(now, location)
}

// StartOfWeek returns the noon anchor of the week containing date, where
// weekStart selects the first day of the week (time.Sunday, time.Monday, ...).
func StartOfWeek(date time.Time, weekStart time.Weekday, location *time.Location) time.Time {
	anchored := NoonOf(date, location)
	back := (int(anchored.Weekday()) - int(weekStart) + 7) % 7
	return AddDays(anchored, -back, location)
}

// AddDays moves a noon-anchored date by whole calendar days.
func AddDays(date time.Time, days int, location *time.Location) time.Time {
	return NoonOf(date.AddDate(0, 0, days), location)
}

// AddMonths moves a noon-anchored date by whole calendar months.
func AddMonths(date time.Time, months int, location *time.Location) time.Time {
	return NoonOf(date.AddDate(0, months, 0), location)
}

// AddYears moves a noon-anchored date by whole calendar years.
func AddYears(date time.Time, years int, location *time.Location) time.Time {
	return NoonOf(date.AddDate(years, 0, 0), location)
}

// FirstOfMonth returns the noon anchor of the first day of the date's month.
func FirstOfMonth(date time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	year, month, _ := date.In(location).Date()
	return time.Date(year, month, 1, 12, 0, 0, 0, location)
}
