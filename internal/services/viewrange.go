package services

import (
	"strings"
	"time"
)

// ViewMode selects the calendar presentation.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
	ViewList  ViewMode = "list"
)

// NormalizeViewMode maps unknown input to the week view so the console stays
// renderable regardless of what the query string carries.
func NormalizeViewMode(raw string) ViewMode {
	switch ViewMode(strings.ToLower(strings.TrimSpace(raw))) {
	case ViewDay:
		return ViewDay
	case ViewMonth:
		return ViewMonth
	case ViewList:
		return ViewList
	case ViewWeek:
		return ViewWeek
	}
	return ViewWeek
}

// monthGridDays keeps the month view at six displayed weeks regardless of
// month length or starting weekday.
const monthGridDays = 42

// ViewRange is the half-open [From, To) window a view mode must fetch and
// display. From and To are noon-anchored local dates; FromKey/ToKey carry the
// same bounds as calendar-day keys.
type ViewRange struct {
	From    time.Time
	To      time.Time
	FromKey string
	ToKey   string
}

// Contains reports whether the calendar day identified by key falls inside
// the half-open window.
func (r ViewRange) Contains(key string) bool {
	return key >= r.FromKey && key < r.ToKey
}

// RangeFor computes the fetch window for a mode anchored at the given date.
//
//	day:   [anchor, anchor+1)
//	week:  [startOfWeek(anchor), +7 days)
//	month: [startOfWeek(first of month), +42 days), always six displayed weeks
//	list:  [first of month, +1 year)
func RangeFor(mode ViewMode, anchor time.Time, weekStart time.Weekday, location *time.Location) ViewRange {
	anchored := NoonOf(anchor, location)

	var from, to time.Time
	switch mode {
	case ViewDay:
		from = anchored
		to = AddDays(from, 1, location)
	case ViewMonth:
		from = StartOfWeek(FirstOfMonth(anchored, location), weekStart, location)
		to = AddDays(from, monthGridDays, location)
	case ViewList:
		from = FirstOfMonth(anchored, location)
		to = AddYears(from, 1, location)
	default:
		from = StartOfWeek(anchored, weekStart, location)
		to = AddDays(from, 7, location)
	}

	return ViewRange{
		From:    from,
		To:      to,
		FromKey: DateKeyAt(from, location),
		ToKey:   DateKeyAt(to, location),
	}
}

// ShiftAnchor moves the anchor by one unit of the mode: a day, a week, a
// calendar month, or a year. Shifting by +1 and then -1 restores the original
// anchor's bucket. Month and list shifts land on the first of the month so
// that day-of-month overflow (Jan 31 -> Mar 3) can never skip a bucket.
func ShiftAnchor(mode ViewMode, anchor time.Time, direction int, location *time.Location) time.Time {
	anchored := NoonOf(anchor, location)
	switch mode {
	case ViewDay:
		return AddDays(anchored, direction, location)
	case ViewMonth:
		return AddMonths(FirstOfMonth(anchored, location), direction, location)
	case ViewList:
		return AddYears(FirstOfMonth(anchored, location), direction, location)
	default:
		return AddDays(anchored, 7*direction, location)
	}
}
