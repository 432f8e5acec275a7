package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil))
	assert.ErrorIs(t, mapError(gorm.ErrRecordNotFound), repository.ErrNotFound)
	assert.ErrorIs(t, mapError(fmt.Errorf("wrapped: %w", gorm.ErrRecordNotFound)), repository.ErrNotFound)

	pgxDup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_trainers_email"}
	err := mapError(fmt.Errorf("insert: %w", pgxDup))
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.Contains(t, err.Error(), "idx_trainers_email")

	pqDup := &pq.Error{Code: "23505", Constraint: "idx_users_email"}
	assert.ErrorIs(t, mapError(pqDup), repository.ErrDuplicate)

	other := errors.New("connection reset")
	err = mapError(other)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, repository.ErrDuplicate)
	assert.Contains(t, err.Error(), SourceName)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, gormLogger.Silent, ParseLogLevel("silent"))
	assert.Equal(t, gormLogger.Error, ParseLogLevel("ERROR"))
	assert.Equal(t, gormLogger.Info, ParseLogLevel(" info "))
	assert.Equal(t, gormLogger.Warn, ParseLogLevel(""))
}

func TestMealPlanRow_MealsStoredAsJSONText(t *testing.T) {
	protein := 40
	plan := &domain.MealPlan{
		ID:       "mp-1",
		Title:    "Cut",
		Category: "Weight Loss",
		Protein:  &protein,
		Meals: []domain.MealEntry{
			domain.TextMeal("Breakfast: eggs"),
			domain.RecordMeal(domain.MealRecord{Name: "Lunch", Calories: 600}),
		},
	}

	row, err := newMealPlanRow(plan)
	require.NoError(t, err)
	assert.JSONEq(t, `["Breakfast: eggs", {"name":"Lunch","calories":600}]`, row.Meals)

	back := row.toDomain()
	assert.Equal(t, plan.Meals, back.Meals)
	assert.Equal(t, 40, *back.Protein)
}

func TestMealPlanRow_EmptyMeals(t *testing.T) {
	row, err := newMealPlanRow(&domain.MealPlan{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, "[]", row.Meals)
}

func TestMealPlanRow_LegacyNewlineText(t *testing.T) {
	row := mealPlanRow{Meals: "Breakfast: oats\nLunch: salad\n"}
	assert.Equal(t, []domain.MealEntry{
		domain.TextMeal("Breakfast: oats"),
		domain.TextMeal("Lunch: salad"),
	}, row.toDomain().Meals)
}

func TestMembershipRow_Features(t *testing.T) {
	row, err := newMembershipRow(&domain.MembershipPlan{Name: "Gold", Features: []string{"Gym", "Pool"}})
	require.NoError(t, err)
	assert.JSONEq(t, `["Gym","Pool"]`, string(row.Features))

	legacy := membershipRow{Name: "Old", Features: datatypes.JSON(`"Gym\nPool"`)}
	assert.Equal(t, []string{"Gym", "Pool"}, legacy.toDomain().Features)
}

func TestScheduleRow_TrainerJoin(t *testing.T) {
	id := "t-1"
	row := scheduleRow{ID: "s-1", Day: "MONDAY", Time: "07:00", TrainerID: &id}
	s := row.toDomain()
	assert.Equal(t, domain.Monday, s.Day)
	assert.Nil(t, s.Trainer)
	assert.Equal(t, domain.DefaultClassDuration, s.Duration)

	row.Trainer = &trainerRow{ID: id, Name: "Priya Singh"}
	s = row.toDomain()
	require.NotNil(t, s.Trainer)
	assert.Equal(t, "Priya Singh", s.Trainer.Name)
}

func TestUserRow_NormalisesEmailAndRole(t *testing.T) {
	row, err := newUserRow(&domain.User{Email: " Admin@Gym.Example ", Role: "ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, "admin@gym.example", row.Email)
	assert.Equal(t, "admin", row.Role)

	row.Role = ""
	assert.Equal(t, domain.RoleUser, row.toDomain().Role)
}
