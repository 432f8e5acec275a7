package postgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// SourceName identifies the primary store in logs and error chains.
const SourceName = "postgres"

const (
	pingTimeout   = 5 * time.Second
	slowThreshold = 200 * time.Millisecond
)

// Open connects to PostgreSQL through gorm and verifies the connection.
// logLevel is one of silent, error, warn or info.
func Open(dsn, logLevel string) (*gorm.DB, error) {
	db, err := OpenLazy(dsn, logLevel)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := Ping(ctx, db); err != nil {
		Close(db)
		return nil, err
	}
	return db, nil
}

// OpenLazy prepares the connection pool without dialing. Queries fail
// until the server is reachable; only a malformed DSN is an error here.
func OpenLazy(dsn, logLevel string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.New(log.New(os.Stdout, "", log.LstdFlags), gormLogger.Config{
			SlowThreshold:             slowThreshold,
			LogLevel:                  ParseLogLevel(logLevel),
			IgnoreRecordNotFoundError: true,
		}),
		DisableAutomaticPing: true,
		// trainer references on schedules are weak: no FK, no cascade
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// Ping checks the underlying connection pool.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("postgres pool: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("ERROR: Getting postgres pool: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("ERROR: Closing postgres connection: %v", err)
		return
	}
	log.Println("INFO: PostgreSQL connection closed.")
}

// ParseLogLevel maps a config string onto a gorm log level. Unknown
// values mean warn.
func ParseLogLevel(s string) gormLogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return gormLogger.Silent
	case "error":
		return gormLogger.Error
	case "info":
		return gormLogger.Info
	default:
		return gormLogger.Warn
	}
}

// AutoMigrate creates or updates every table of the primary store.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userRow{},
		&trainerRow{},
		&scheduleRow{},
		&mealPlanRow{},
		&membershipRow{},
		&purchaseRow{},
	)
}
