package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"alcyxob/fitness-center/internal/config"
	"alcyxob/fitness-center/internal/repository/mongo"
	"alcyxob/fitness-center/internal/repository/postgres"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "fitctl",
	Short: "fitctl maintains the fitness center data stores",
	Long:  "fitctl checks connectivity, migrates schemas, seeds sample data and mirrors the primary store into the secondary.",
	// usage is noise on a failed database call
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory holding config.yaml")
}

// loadConfig reads the server configuration. fitctl never issues tokens, so
// a missing JWT secret is not an error here.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil && !errors.Is(err, config.ErrMissingJWTSecret) {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func withPrimary(cfg config.Config, run func(*gorm.DB) error) error {
	db, err := postgres.Open(cfg.Postgres.DSN, cfg.Postgres.LogLevel)
	if err != nil {
		return err
	}
	defer postgres.Close(db)
	return run(db)
}

func withSecondary(cfg config.Config, run func(*mongodrv.Database) error) error {
	if !cfg.Mongo.Enabled {
		return errors.New("mongo is disabled (mongo.enabled=false)")
	}
	client, err := mongo.ConnectDB(cfg.Mongo.URI)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() { _ = mongo.DisconnectDB(client) }()
	return run(client.Database(cfg.Mongo.Name))
}
