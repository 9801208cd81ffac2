package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/solenedv/cadence/internal/db"
	"github.com/solenedv/cadence/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newCalendarTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "cadence-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler, err := NewHandler(database, "test-secret-key", time.UTC, time.Sunday, false)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func createTestUser(t *testing.T, database *gorm.DB, email string, password string) models.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(passwordHash),
		Name:         "Test Instructor",
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func loginTestUser(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	response := postJSON(t, app, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("login returned status %d, want 200", response.StatusCode)
	}
	session := responseCookieValue(response.Cookies(), authCookieName)
	if session == "" {
		t.Fatalf("login did not set the session cookie")
	}
	return session
}

func postJSON(t *testing.T, app *fiber.App, path string, session string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if session != "" {
		request.Header.Set("Cookie", authCookieName+"="+session)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return response
}

func getJSON(t *testing.T, app *fiber.App, path string, session string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	if session != "" {
		request.Header.Set("Cookie", authCookieName+"="+session)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return response
}

func decodeJSONBody(t *testing.T, response *http.Response, target any) {
	t.Helper()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func responseCookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func seedScheduleEvent(t *testing.T, database *gorm.DB, title string, startsAt time.Time, durationMinutes int) models.ScheduleEvent {
	t.Helper()

	endsAt := startsAt.Add(time.Duration(durationMinutes) * time.Minute)
	event := models.ScheduleEvent{
		Title:    title,
		StartsAt: startsAt,
		EndsAt:   &endsAt,
		Status:   models.StatusScheduled,
	}
	if err := db.NewEventRepository(database).Create(&event); err != nil {
		t.Fatalf("create schedule event: %v", err)
	}
	return event
}

func seedCustomer(t *testing.T, database *gorm.DB, fullName string, email string, birthdate time.Time) models.Customer {
	t.Helper()

	customer := models.Customer{
		FullName:  fullName,
		Email:     email,
		Birthdate: &birthdate,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.NewCustomerRepository(database).Create(&customer); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return customer
}

func seedHoliday(t *testing.T, database *gorm.DB, name string, date time.Time) models.Holiday {
	t.Helper()

	holiday := models.Holiday{Name: name, Date: date}
	if err := db.NewHolidayRepository(database).Create(&holiday); err != nil {
		t.Fatalf("create holiday: %v", err)
	}
	return holiday
}

func seedRoom(t *testing.T, database *gorm.DB, name string, capacity int) models.Room {
	t.Helper()

	room := models.Room{Name: name, Capacity: capacity}
	if err := db.NewRoomRepository(database).Create(&room); err != nil {
		t.Fatalf("create room: %v", err)
	}
	return room
}
