package main

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"alcyxob/fitness-center/internal/repository/postgres"
)

const primaryRetryInterval = 30 * time.Second

// migrateWhenReachable pings the primary every interval and migrates the
// schema once it answers. It gives up when ctx is cancelled.
func migrateWhenReachable(ctx context.Context, db *gorm.DB, interval time.Duration) bool {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}

		pingCtx, cancel := context.WithTimeout(ctx, interval)
		err := postgres.Ping(pingCtx, db)
		cancel()
		if err != nil {
			log.Printf("WARN: PostgreSQL still unreachable: %v", err)
			continue
		}
		if err := postgres.AutoMigrate(db.WithContext(ctx)); err != nil {
			log.Printf("ERROR: Could not migrate PostgreSQL schema: %v", err)
			continue
		}
		log.Println("INFO: PostgreSQL reachable again; schema migrated.")
		return true
	}
}
