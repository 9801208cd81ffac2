package models

import "time"

type Room struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	Capacity  int    `gorm:"not null;default:0"`
	CreatedAt time.Time
}
