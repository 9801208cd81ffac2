package api

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/solenedv/cadence/internal/db"
	"gorm.io/gorm"
)

const (
	authCookieName  = "cadence_session"
	contextUserKey  = "currentUser"
	defaultTokenTTL = 7 * 24 * time.Hour
)

type Handler struct {
	db           *gorm.DB
	repos        *db.Repositories
	secretKey    []byte
	location     *time.Location
	weekStart    time.Weekday
	cookieSecure bool
	drags        *dragRegistry
}

type authClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func NewHandler(database *gorm.DB, secretKey string, location *time.Location, weekStart time.Weekday, cookieSecure bool) (*Handler, error) {
	if database == nil {
		return nil, errors.New("api: database is required")
	}
	if secretKey == "" {
		return nil, errors.New("api: secret key is required")
	}
	if location == nil {
		location = time.UTC
	}

	repos := db.NewRepositories(database)
	return &Handler{
		db:           database,
		repos:        repos,
		secretKey:    []byte(secretKey),
		location:     location,
		weekStart:    weekStart,
		cookieSecure: cookieSecure,
		drags:        newDragRegistry(repos.Events, location),
	}, nil
}
