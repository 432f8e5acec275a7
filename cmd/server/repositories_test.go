package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
	"alcyxob/fitness-center/internal/repository/postgres"
)

// nothing listens on port 1, so every query is refused
const unreachableDSN = "host=127.0.0.1 port=1 user=postgres dbname=fitness_center sslmode=disable connect_timeout=1"

type trainerSnapshot []domain.Trainer

func (s trainerSnapshot) Source() string { return "mongo" }
func (s trainerSnapshot) List(ctx context.Context) ([]domain.Trainer, error) {
	return s, nil
}
func (s trainerSnapshot) GetByID(ctx context.Context, id string) (*domain.Trainer, error) {
	for i := range s {
		if s[i].ID == id {
			return &s[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func lazyPrimary(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := postgres.OpenLazy(unreachableDSN, "silent")
	require.NoError(t, err)
	t.Cleanup(func() { postgres.Close(db) })
	return db
}

func TestRepositories_PrimaryDownAtStartup(t *testing.T) {
	_, err := postgres.Open(unreachableDSN, "silent")
	require.Error(t, err)

	db := lazyPrimary(t)
	repos := rankRepositories(postgresStores(db), &secondaryStores{
		trainers: trainerSnapshot{{ID: "t1", Name: "Alex"}, {ID: "t2", Name: "Sam"}},
	})
	ctx := context.Background()

	trainers, err := repos.trainers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, trainers, 2)
	assert.Equal(t, "Alex", trainers[0].Name)

	err = repos.trainers.Create(ctx, &domain.Trainer{Name: "New", Email: "new@gym.test"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNoData)
}

func TestRepositories_PrimaryOnly(t *testing.T) {
	repos := rankRepositories(postgresStores(lazyPrimary(t)), nil)
	assert.Equal(t, []string{postgres.SourceName}, repos.trainers.Sources())
	assert.Nil(t, repos.exerciseLog)

	_, err := repos.trainers.List(context.Background())
	assert.ErrorIs(t, err, repository.ErrNoData)
}

func TestMigrateWhenReachable_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.False(t, migrateWhenReachable(ctx, lazyPrimary(t), 10*time.Millisecond))
}
