package models

import "time"

const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
)

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Name         string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:instructor"`
	CreatedAt    time.Time `gorm:"not null"`
}
