package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	"github.com/spf13/cobra"

	"alcyxob/fitness-center/internal/config"
	"alcyxob/fitness-center/internal/repository/mongo"
)

const checkTimeout = 5 * time.Second

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Ping the primary and secondary stores",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		failed := report(out, "postgres", checkPrimary(cmd.Context(), cfg))
		if cfg.Mongo.Enabled {
			failed = report(out, "mongo", checkSecondary(cfg)) || failed
		} else {
			fmt.Fprintln(out, "mongo: disabled")
		}
		if failed {
			return fmt.Errorf("one or more stores are unreachable")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkPrimary opens a plain database/sql connection, bypassing gorm.
func checkPrimary(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sqldb, err := sql.Open("postgres", cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	return sqldb.PingContext(ctx)
}

func checkSecondary(cfg config.Config) error {
	client, err := mongo.ConnectDB(cfg.Mongo.URI)
	if err != nil {
		return err
	}
	return mongo.DisconnectDB(client)
}

// report prints one result line and reports whether it was a failure.
func report(out io.Writer, store string, err error) bool {
	if err != nil {
		fmt.Fprintf(out, "%s: FAIL (%v)\n", store, err)
		return true
	}
	fmt.Fprintf(out, "%s: ok\n", store)
	return false
}
