package services

import (
	"sort"
	"time"

	"github.com/solenedv/cadence/internal/models"
)

const (
	// GridOriginMinutes is the wall-clock time (07:00) at offset zero of the
	// time-grid views.
	GridOriginMinutes = 7 * 60
	// DefaultDurationMinutes is assumed when an event carries neither an end
	// instant nor an explicit duration.
	DefaultDurationMinutes = 60

	timeLabelLayout = "15:04"
)

// BirthdayContact is one source record folded into a birthday aggregator.
type BirthdayContact struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// DisplayEvent is the fully derived, render-ready form of a schedule event.
// It is rebuilt on every engine pass; the renderer never re-derives any of
// these fields.
type DisplayEvent struct {
	ID                 uint              `json:"id"`
	Title              string            `json:"title"`
	Icon               string            `json:"icon,omitempty"`
	Color              string            `json:"color,omitempty"`
	DateKey            string            `json:"dateKey"`
	StartsAt           time.Time         `json:"startsAt"`
	EndsAt             *time.Time        `json:"endsAt,omitempty"`
	StartTime          string            `json:"startTime"`
	EndTime            string            `json:"endTime"`
	TimeRange          string            `json:"timeRange"`
	RoomID             *uint             `json:"roomId,omitempty"`
	RoomName           string            `json:"roomName,omitempty"`
	InstructorID       *uint             `json:"instructorId,omitempty"`
	InstructorName     string            `json:"instructorName,omitempty"`
	Capacity           int               `json:"capacity"`
	RemoteCapacity     int               `json:"remoteCapacity"`
	BookedCount        int               `json:"bookedCount"`
	RemoteBookedCount  int               `json:"remoteBookedCount"`
	PriceCents         int               `json:"priceCents"`
	IsAllDay           bool              `json:"isAllDay"`
	IsHoliday          bool              `json:"isHoliday"`
	IsBirthday         bool              `json:"isBirthday"`
	IsCancelled        bool              `json:"isCancelled"`
	IsPast             bool              `json:"isPast"`
	IsLocked           bool              `json:"isLocked"`
	SuppressActions    bool              `json:"suppressActions"`
	DurationMinutes    int               `json:"durationMinutes"`
	StartOffsetMinutes int               `json:"startOffsetMinutes"`
	BirthdayNames      []string          `json:"birthdayNames,omitempty"`
	BirthdayContacts   []BirthdayContact `json:"birthdayContacts,omitempty"`
}

// BucketEvents groups raw events by local calendar day and derives every
// display-only field. Same-day birthday records collapse into one locked
// aggregator per day; each bucket comes back sorted with all-day entries
// first and timed entries ascending by start.
//
// Events without a start instant are dropped; bad data never fails the pass.
func BucketEvents(events []models.ScheduleEvent, now time.Time, location *time.Location) map[string][]DisplayEvent {
	if location == nil {
		location = time.UTC
	}

	// First pass: partition by day and overlay kind.
	timedByDay := make(map[string][]models.ScheduleEvent)
	holidaysByDay := make(map[string][]models.ScheduleEvent)
	birthdaysByDay := make(map[string][]models.ScheduleEvent)
	dayOrder := make([]string, 0)

	seen := func(key string) {
		if _, ok := timedByDay[key]; ok {
			return
		}
		if _, ok := holidaysByDay[key]; ok {
			return
		}
		if _, ok := birthdaysByDay[key]; ok {
			return
		}
		dayOrder = append(dayOrder, key)
	}

	for _, event := range events {
		if event.StartsAt.IsZero() {
			continue
		}
		key := DateKeyAt(event.StartsAt, location)
		seen(key)
		switch {
		case event.IsBirthday:
			birthdaysByDay[key] = append(birthdaysByDay[key], event)
		case event.IsHoliday:
			holidaysByDay[key] = append(holidaysByDay[key], event)
		default:
			timedByDay[key] = append(timedByDay[key], event)
		}
	}

	// Second pass: fold birthdays, derive display fields, sort buckets.
	buckets := make(map[string][]DisplayEvent, len(dayOrder))
	for _, key := range dayOrder {
		bucket := make([]DisplayEvent, 0, len(holidaysByDay[key])+len(timedByDay[key])+1)
		for _, event := range holidaysByDay[key] {
			bucket = append(bucket, displayEventFrom(event, key, now, location))
		}
		if aggregator, ok := foldBirthdays(birthdaysByDay[key], key, location); ok {
			bucket = append(bucket, aggregator)
		}
		timed := timedByDay[key]
		sort.SliceStable(timed, func(i, j int) bool {
			return timed[i].StartsAt.Before(timed[j].StartsAt)
		})
		for _, event := range timed {
			bucket = append(bucket, displayEventFrom(event, key, now, location))
		}
		buckets[key] = bucket
	}

	return buckets
}

// DisplayEventOf derives the render-ready form of a single event, outside of
// any bucket. Drag gestures use it to capture the dragged event's positioning
// before the pipeline re-runs.
func DisplayEventOf(event models.ScheduleEvent, now time.Time, location *time.Location) DisplayEvent {
	if location == nil {
		location = time.UTC
	}
	return displayEventFrom(event, DateKeyAt(event.StartsAt, location), now, location)
}

// foldBirthdays reduces all same-day birthday records into one aggregator
// event carrying every name and contact in arrival order.
func foldBirthdays(records []models.ScheduleEvent, key string, location *time.Location) (DisplayEvent, bool) {
	if len(records) == 0 {
		return DisplayEvent{}, false
	}

	aggregator := displayEventFrom(records[0], key, time.Time{}, location)
	aggregator.BirthdayNames = make([]string, 0, len(records))
	aggregator.BirthdayContacts = make([]BirthdayContact, 0, len(records))
	for _, record := range records {
		name := record.BirthdayName
		if name == "" {
			name = record.Title
		}
		aggregator.BirthdayNames = append(aggregator.BirthdayNames, name)
		aggregator.BirthdayContacts = append(aggregator.BirthdayContacts, BirthdayContact{
			Name:  name,
			Email: record.ContactEmail,
			Phone: record.ContactPhone,
		})
	}

	aggregator.Title = birthdayTitle(aggregator.BirthdayNames)
	return aggregator, true
}

func birthdayTitle(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

func displayEventFrom(event models.ScheduleEvent, key string, now time.Time, location *time.Location) DisplayEvent {
	allDay := event.IsHoliday || event.IsBirthday

	display := DisplayEvent{
		ID:                event.ID,
		Title:             event.Title,
		Icon:              event.Icon,
		Color:             event.Color,
		DateKey:           key,
		StartsAt:          event.StartsAt,
		EndsAt:            event.EndsAt,
		RoomID:            event.RoomID,
		RoomName:          event.RoomName(),
		InstructorID:      event.InstructorID,
		InstructorName:    event.InstructorName(),
		Capacity:          event.Capacity,
		RemoteCapacity:    event.RemoteCapacity,
		BookedCount:       event.BookedCount,
		RemoteBookedCount: event.RemoteBookedCount,
		PriceCents:        event.PriceCents,
		IsAllDay:          allDay,
		IsHoliday:         event.IsHoliday,
		IsBirthday:        event.IsBirthday,
		IsCancelled:       event.Status == models.StatusCancelled,
		IsLocked:          allDay,
		SuppressActions:   allDay,
	}

	if !allDay {
		display.IsPast = eventIsPast(event, now)
		display.StartTime = event.StartsAt.In(location).Format(timeLabelLayout)
		if event.EndsAt != nil {
			display.EndTime = event.EndsAt.In(location).Format(timeLabelLayout)
			display.TimeRange = display.StartTime + " - " + display.EndTime
		} else {
			display.TimeRange = display.StartTime
		}
	}

	display.DurationMinutes = eventDurationMinutes(event)
	display.StartOffsetMinutes = startOffsetMinutes(event.StartsAt, location)
	return display
}

func eventIsPast(event models.ScheduleEvent, now time.Time) bool {
	reference := event.StartsAt
	if event.EndsAt != nil {
		reference = *event.EndsAt
	}
	return reference.Before(now)
}

func eventDurationMinutes(event models.ScheduleEvent) int {
	if event.DurationMinutes > 0 {
		return event.DurationMinutes
	}
	if event.EndsAt != nil {
		if minutes := int(event.EndsAt.Sub(event.StartsAt).Minutes()); minutes > 0 {
			return minutes
		}
	}
	return DefaultDurationMinutes
}

func startOffsetMinutes(startsAt time.Time, location *time.Location) int {
	if location == nil {
		location = time.UTC
	}
	local := startsAt.In(location)
	offset := local.Hour()*60 + local.Minute() - GridOriginMinutes
	if offset < 0 {
		return 0
	}
	return offset
}
