package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"alcyxob/fitness-center/internal/repository/mongo"
	"alcyxob/fitness-center/internal/repository/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update tables and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		err = withPrimary(cfg, func(db *gorm.DB) error {
			if err := postgres.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrate postgres: %w", err)
			}
			fmt.Fprintln(out, "postgres: tables migrated")
			return nil
		})
		if err != nil {
			return err
		}

		if !cfg.Mongo.Enabled {
			fmt.Fprintln(out, "mongo: disabled, skipping indexes")
			return nil
		}
		return withSecondary(cfg, func(appDB *mongodrv.Database) error {
			if err := mongo.EnsureIndexes(context.Background(), appDB); err != nil {
				return fmt.Errorf("mongo indexes: %w", err)
			}
			fmt.Fprintln(out, "mongo: indexes ensured")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
