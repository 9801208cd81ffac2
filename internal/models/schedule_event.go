package models

import "time"

const (
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
)

// ScheduleEvent is one concrete occurrence on the studio calendar. Recurring
// series are expanded into individual rows before they reach this service;
// the calendar engine only arranges the instances it is given.
//
// Holiday and birthday rows are synthetic all-day overlays. They are built in
// memory from Holiday and Customer records and never persisted.
type ScheduleEvent struct {
	ID                uint   `gorm:"primaryKey"`
	Title             string `gorm:"not null"`
	Icon              string
	Color             string
	StartsAt          time.Time `gorm:"not null;index"`
	EndsAt            *time.Time
	DurationMinutes   int
	RoomID            *uint
	Room              *Room `gorm:"foreignKey:RoomID"`
	InstructorID      *uint
	Instructor        *User `gorm:"foreignKey:InstructorID"`
	Capacity          int   `gorm:"not null;default:0"`
	RemoteCapacity    int   `gorm:"not null;default:0"`
	BookedCount       int   `gorm:"not null;default:0"`
	RemoteBookedCount int   `gorm:"not null;default:0"`
	PriceCents        int   `gorm:"not null;default:0"`
	Status            string `gorm:"not null;default:scheduled"`
	IsHoliday         bool   `gorm:"-"`
	IsBirthday        bool   `gorm:"-"`
	BirthdayName      string `gorm:"-"`
	ContactEmail      string `gorm:"-"`
	ContactPhone      string `gorm:"-"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (event ScheduleEvent) RoomName() string {
	if event.Room == nil {
		return ""
	}
	return event.Room.Name
}

func (event ScheduleEvent) InstructorName() string {
	if event.Instructor == nil {
		return ""
	}
	return event.Instructor.Name
}

// Registrations counts in-person and remote bookings together.
func (event ScheduleEvent) Registrations() int {
	return event.BookedCount + event.RemoteBookedCount
}
