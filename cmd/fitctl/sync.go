package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
	"alcyxob/fitness-center/internal/repository/mongo"
	"alcyxob/fitness-center/internal/repository/postgres"
)

var syncPrune bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror every primary record into the secondary store",
	Long:  "sync upserts every postgres record into mongo by id. With --prune, mongo documents that no longer exist in postgres are removed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := &lockedWriter{w: cmd.OutOrStdout()}

		return withPrimary(cfg, func(db *gorm.DB) error {
			return withSecondary(cfg, func(appDB *mongodrv.Database) error {
				g, ctx := errgroup.WithContext(cmd.Context())
				g.Go(func() error {
					return mirror[domain.Trainer](ctx, out, "trainers", postgres.NewTrainerRepository(db), mongo.NewMongoTrainerRepository(appDB),
						func(t *domain.Trainer) string { return t.ID })
				})
				g.Go(func() error {
					return mirror[domain.ClassSchedule](ctx, out, "schedules", postgres.NewScheduleRepository(db), mongo.NewMongoScheduleRepository(appDB),
						func(s *domain.ClassSchedule) string { return s.ID })
				})
				g.Go(func() error {
					return mirror[domain.MealPlan](ctx, out, "meal plans", postgres.NewMealPlanRepository(db), mongo.NewMongoMealPlanRepository(appDB),
						func(m *domain.MealPlan) string { return m.ID })
				})
				g.Go(func() error {
					return mirror[domain.MembershipPlan](ctx, out, "memberships", postgres.NewMembershipRepository(db), mongo.NewMongoMembershipRepository(appDB),
						func(m *domain.MembershipPlan) string { return m.ID })
				})
				g.Go(func() error {
					return mirror[domain.MembershipPurchase](ctx, out, "membership purchases", postgres.NewPurchaseRepository(db), mongo.NewMongoPurchaseRepository(appDB),
						func(p *domain.MembershipPurchase) string { return p.ID })
				})
				g.Go(func() error {
					return mirror[domain.User](ctx, out, "users", postgres.NewUserRepository(db), mongo.NewMongoUserRepository(appDB),
						func(u *domain.User) string { return u.ID })
				})
				return g.Wait()
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().BoolVar(&syncPrune, "prune", false, "Delete secondary documents missing from the primary")
}

// upserter is the write side of a secondary collection.
type upserter[T any] interface {
	Upsert(ctx context.Context, rec *T) error
	DeleteMissing(ctx context.Context, keep []string) (int64, error)
}

func mirror[T any](ctx context.Context, out io.Writer, entity string, from repository.Reader[T], to upserter[T], id func(*T) string) error {
	records, err := from.List(ctx)
	if err != nil {
		return fmt.Errorf("read %s: %w", entity, err)
	}
	keep := make([]string, 0, len(records))
	for i := range records {
		if err := to.Upsert(ctx, &records[i]); err != nil {
			return fmt.Errorf("mirror %s %s: %w", entity, id(&records[i]), err)
		}
		keep = append(keep, id(&records[i]))
	}

	var pruned int64
	if syncPrune {
		if pruned, err = to.DeleteMissing(ctx, keep); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "%s: %d mirrored, %d pruned\n", entity, len(records), pruned)
	return nil
}

// lockedWriter serialises output from concurrent entity syncs.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
