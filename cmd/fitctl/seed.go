package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"alcyxob/fitness-center/internal/config"
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
	"alcyxob/fitness-center/internal/repository/postgres"
	"alcyxob/fitness-center/internal/service"
)

var seedSkipAdmin bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample catalog data and the admin account",
	Long:  "seed inserts the sample trainers, schedules, meal plans and memberships plus the configured admin account into the primary store. Records that already exist are left alone.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		ctx := cmd.Context()

		return withPrimary(cfg, func(db *gorm.DB) error {
			samples := service.Samples()
			steps := []func() error{
				func() error { return seed[domain.Trainer](ctx, out, "trainers", postgres.NewTrainerRepository(db), samples.Trainers) },
				func() error { return seed[domain.ClassSchedule](ctx, out, "schedules", postgres.NewScheduleRepository(db), samples.Schedules) },
				func() error { return seed[domain.MealPlan](ctx, out, "meal plans", postgres.NewMealPlanRepository(db), samples.MealPlans) },
				func() error {
					return seed[domain.MembershipPlan](ctx, out, "memberships", postgres.NewMembershipRepository(db), samples.Memberships)
				},
			}
			if !seedSkipAdmin {
				steps = append(steps, func() error { return seedAdmin(ctx, out, postgres.NewUserRepository(db), cfg.Admin) })
			}
			for _, step := range steps {
				if err := step(); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&seedSkipAdmin, "skip-admin", false, "Do not create the admin account")
}

// seed inserts each record, counting the ones a unique key already holds.
func seed[T any](ctx context.Context, out io.Writer, entity string, store repository.Writer[T], records []T) error {
	var created, existing int
	for i := range records {
		rec := records[i]
		err := store.Create(ctx, &rec)
		switch {
		case err == nil:
			created++
		case errors.Is(err, repository.ErrDuplicate):
			existing++
		default:
			return fmt.Errorf("seed %s: %w", entity, err)
		}
	}
	fmt.Fprintf(out, "%s: %d created, %d already present\n", entity, created, existing)
	return nil
}

func seedAdmin(ctx context.Context, out io.Writer, users repository.UserStore, admin config.AdminConfig) error {
	email := strings.ToLower(strings.TrimSpace(admin.Email))
	if email == "" || admin.Password == "" {
		fmt.Fprintln(out, "admin: skipped (set admin.email and admin.password)")
		return nil
	}

	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		fmt.Fprintf(out, "admin: %s already present\n", email)
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	user := &domain.User{
		Name:         admin.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	fmt.Fprintf(out, "admin: %s created\n", email)
	return nil
}
