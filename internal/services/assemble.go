package services

import (
	"sort"
	"strings"
	"time"

	"github.com/solenedv/cadence/internal/models"
)

// monthPreviewLimit caps how many events a month cell shows before the
// overflow counter takes over.
const monthPreviewLimit = 3

// CalendarViewOptions carries everything BuildCalendarView needs besides the
// raw events. Now is injectable so past/today flags are testable.
type CalendarViewOptions struct {
	Mode             ViewMode
	Anchor           time.Time
	Location         *time.Location
	WeekStart        time.Weekday
	Search           string
	Now              time.Time
	NewCustomerProbe NewCustomerProbe
}

// DayCell is one rendered day bucket.
type DayCell struct {
	DateKey string         `json:"dateKey"`
	Label   string         `json:"label"`
	Weekday string         `json:"weekday"`
	IsToday bool           `json:"isToday"`
	Events  []DisplayEvent `json:"events"`
}

// MonthCell is one of the 42 cells of the month grid.
type MonthCell struct {
	DateKey        string         `json:"dateKey"`
	Day            int            `json:"day"`
	IsCurrentMonth bool           `json:"isCurrentMonth"`
	IsToday        bool           `json:"isToday"`
	Preview        []DisplayEvent `json:"preview"`
	OverflowCount  int            `json:"overflowCount"`
	EventCount     int            `json:"eventCount"`
}

// CalendarViewModel is the engine's complete output for one pass. Exactly one
// of Day, Week, Month, and List is populated, matching Mode.
type CalendarViewModel struct {
	Mode       ViewMode       `json:"mode"`
	AnchorKey  string         `json:"anchorKey"`
	RangeLabel string         `json:"rangeLabel"`
	Range      ViewRange      `json:"range"`
	Day        *DayCell       `json:"day,omitempty"`
	Week       []DayCell      `json:"week,omitempty"`
	Month      []MonthCell    `json:"month,omitempty"`
	List       []DisplayEvent `json:"list,omitempty"`
	Stats      WeekStats      `json:"stats"`
}

// BuildCalendarView runs the whole pipeline: bucket the supplied events, shape
// the mode-specific payload, and attach the weekly stats block. The search
// filter narrows every mode's output without touching the underlying buckets.
func BuildCalendarView(events []models.ScheduleEvent, opts CalendarViewOptions) CalendarViewModel {
	location := opts.Location
	if location == nil {
		location = time.UTC
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	mode := NormalizeViewMode(string(opts.Mode))
	anchor := NoonOf(opts.Anchor, location)

	buckets := BucketEvents(events, now, location)
	window := RangeFor(mode, anchor, opts.WeekStart, location)
	todayKey := DateKeyAt(now, location)

	view := CalendarViewModel{
		Mode:       mode,
		AnchorKey:  DateKeyAt(anchor, location),
		RangeLabel: rangeLabel(mode, anchor, window, location),
		Range:      window,
		Stats:      BuildWeekStats(buckets, now, opts.WeekStart, location, opts.NewCustomerProbe),
	}

	switch mode {
	case ViewDay:
		cell := buildDayCell(anchor, buckets, opts.Search, todayKey, location)
		view.Day = &cell
	case ViewMonth:
		view.Month = buildMonthGrid(anchor, window, buckets, opts.Search, todayKey, location)
	case ViewList:
		view.List = buildEventList(events, window, opts.Search, now, location)
	default:
		view.Week = buildWeekCells(window, buckets, opts.Search, todayKey, location)
	}

	return view
}

func buildDayCell(date time.Time, buckets map[string][]DisplayEvent, search string, todayKey string, location *time.Location) DayCell {
	key := DateKeyAt(date, location)
	local := date.In(location)
	return DayCell{
		DateKey: key,
		Label:   local.Format("2 January 2006"),
		Weekday: local.Format("Monday"),
		IsToday: key == todayKey,
		Events:  filterEvents(buckets[key], search),
	}
}

func buildWeekCells(window ViewRange, buckets map[string][]DisplayEvent, search string, todayKey string, location *time.Location) []DayCell {
	cells := make([]DayCell, 0, 7)
	for day := window.From; day.Before(window.To); day = AddDays(day, 1, location) {
		cells = append(cells, buildDayCell(day, buckets, search, todayKey, location))
	}
	return cells
}

func buildMonthGrid(anchor time.Time, window ViewRange, buckets map[string][]DisplayEvent, search string, todayKey string, location *time.Location) []MonthCell {
	anchorMonth := anchor.In(location).Month()

	cells := make([]MonthCell, 0, monthGridDays)
	for day := window.From; day.Before(window.To); day = AddDays(day, 1, location) {
		key := DateKeyAt(day, location)
		dayEvents := filterEvents(buckets[key], search)

		preview := dayEvents
		overflow := 0
		if len(dayEvents) > monthPreviewLimit {
			preview = dayEvents[:monthPreviewLimit]
			overflow = len(dayEvents) - monthPreviewLimit
		}

		local := day.In(location)
		cells = append(cells, MonthCell{
			DateKey:        key,
			Day:            local.Day(),
			IsCurrentMonth: local.Month() == anchorMonth,
			IsToday:        key == todayKey,
			Preview:        preview,
			OverflowCount:  overflow,
			EventCount:     len(dayEvents),
		})
	}
	return cells
}

// buildEventList flattens the window into one chronologically sorted slice.
// The list view performs no merging: it is derived from the raw events, one
// item per qualifying record, birthdays included individually.
func buildEventList(events []models.ScheduleEvent, window ViewRange, search string, now time.Time, location *time.Location) []DisplayEvent {
	items := make([]DisplayEvent, 0, len(events))
	for _, event := range events {
		if event.StartsAt.IsZero() {
			continue
		}
		key := DateKeyAt(event.StartsAt, location)
		if !window.Contains(key) {
			continue
		}
		display := displayEventFrom(event, key, now, location)
		if display.IsBirthday && display.Title == "" {
			display.Title = event.BirthdayName
		}
		items = append(items, display)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].DateKey != items[j].DateKey {
			return items[i].DateKey < items[j].DateKey
		}
		if items[i].IsAllDay != items[j].IsAllDay {
			return items[i].IsAllDay
		}
		return items[i].StartsAt.Before(items[j].StartsAt)
	})

	return filterEvents(items, search)
}

// filterEvents applies the case-insensitive free-text filter over title,
// instructor, and room. An empty query returns the bucket unchanged.
func filterEvents(events []DisplayEvent, search string) []DisplayEvent {
	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return events
	}
	matched := make([]DisplayEvent, 0, len(events))
	for _, event := range events {
		if strings.Contains(strings.ToLower(event.Title), query) ||
			strings.Contains(strings.ToLower(event.InstructorName), query) ||
			strings.Contains(strings.ToLower(event.RoomName), query) {
			matched = append(matched, event)
		}
	}
	return matched
}

func rangeLabel(mode ViewMode, anchor time.Time, window ViewRange, location *time.Location) string {
	switch mode {
	case ViewDay:
		return anchor.In(location).Format("Monday, 2 January 2006")
	case ViewMonth:
		return anchor.In(location).Format("January 2006")
	case ViewList:
		last := AddDays(window.To, -1, location)
		return window.From.In(location).Format("January 2006") + " - " + last.In(location).Format("January 2006")
	default:
		last := AddDays(window.To, -1, location)
		return window.From.In(location).Format("2 Jan") + " - " + last.In(location).Format("2 Jan 2006")
	}
}
