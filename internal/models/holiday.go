package models

import "time"

type Holiday struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uidx_holiday_date"`
	CreatedAt time.Time
}
