package models

import "time"

type Customer struct {
	ID        uint   `gorm:"primaryKey"`
	FullName  string `gorm:"not null"`
	Email     string
	Phone     string
	Birthdate *time.Time `gorm:"type:date"`
	CreatedAt time.Time  `gorm:"not null"`
}
