package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/solenedv/cadence/internal/db"
	"github.com/solenedv/cadence/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// EnsureAdminUser creates the first console account when the user table is
// empty. Console accounts have no self-serve registration.
func EnsureAdminUser(repos *db.Repositories, email string, password string) error {
	count, err := repos.Users.Count()
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return fmt.Errorf("admin credentials required for first start")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	return repos.Users.Create(&models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Administrator",
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
}
