package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultBusyTimeoutMillis = 5000

// Options configures the SQLite-backed store. The zero value is invalid; Path
// is required.
type Options struct {
	Path              string
	BusyTimeoutMillis int
	LogQueries        bool
}

func (options Options) dsn() string {
	timeout := options.BusyTimeoutMillis
	if timeout <= 0 {
		timeout = defaultBusyTimeoutMillis
	}
	return fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=%d", options.Path, timeout)
}

// Open prepares the database file, connects through the pure-Go driver, and
// brings the schema up to date with the embedded migrations.
func Open(options Options) (*gorm.DB, error) {
	if options.Path == "" {
		return nil, errors.New("db: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(options.Path), 0o755); err != nil {
		return nil, fmt.Errorf("db: create directory for %s: %w", options.Path, err)
	}

	logLevel := gormlogger.Warn
	if options.LogQueries {
		logLevel = gormlogger.Info
	}

	database, err := gorm.Open(sqlite.Open(options.dsn()), &gorm.Config{
		Logger: gormlogger.New(log.Default(), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", options.Path, err)
	}

	if err := applyEmbeddedMigrations(database); err != nil {
		return nil, fmt.Errorf("db: migrate %s: %w", options.Path, err)
	}
	return database, nil
}

// OpenSQLite opens the store at path with default settings.
func OpenSQLite(path string) (*gorm.DB, error) {
	return Open(Options{Path: path})
}
