package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/solenedv/cadence/internal/api"
	"github.com/solenedv/cadence/internal/db"
)

func main() {
	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey := getEnv("SECRET_KEY", "change_me_in_production")
	dbPath := getEnv("DB_PATH", filepath.Join("data", "cadence.db"))
	port := getEnv("PORT", "8080")
	weekStart := weekStartFromEnv(getEnv("WEEK_START", "0"))
	cookieSecure := getEnv("COOKIE_SECURE", "") == "true"

	database, err := db.Open(db.Options{
		Path:       dbPath,
		LogQueries: getEnv("DB_LOG_QUERIES", "") == "true",
	})
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	handler, err := api.NewHandler(database, secretKey, location, weekStart, cookieSecure)
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	if err := api.EnsureAdminUser(db.NewRepositories(database), getEnv("ADMIN_EMAIL", ""), getEnv("ADMIN_PASSWORD", "")); err != nil {
		log.Fatalf("admin bootstrap failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Cadence",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Cadence listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func weekStartFromEnv(raw string) time.Weekday {
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 || index > 6 {
		return time.Sunday
	}
	return time.Weekday(index)
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
