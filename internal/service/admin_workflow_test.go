package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/fitness-center/internal/domain"
)

func validTrainerForm() TrainerForm {
	return TrainerForm{
		Name:           "Arjun Sharma",
		Email:          "Arjun@Example.com",
		Specialization: "Strength Training",
		Experience:     "5",
		Bio:            "Coach",
	}
}

func TestWorkflow_NonNumericExperienceMakesNoCalls(t *testing.T) {
	store := newFakeTrainers()
	w := NewWorkflow[domain.Trainer]("trainers", store)

	form := validTrainerForm()
	form.Experience = "abc"
	_, err := w.Submit(context.Background(), "", form)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "experience", verr.Errors[0].Field)

	creates, lists := store.calls()
	assert.Zero(t, creates)
	assert.Zero(t, lists)
	assert.Equal(t, StateIdle, w.State())
	assert.NotEmpty(t, w.LastError())
}

func TestWorkflow_ValidSubmitCreatesOnceAndRefreshesOnce(t *testing.T) {
	store := newFakeTrainers()
	w := NewWorkflow[domain.Trainer]("trainers", store)

	rec, err := w.Submit(context.Background(), "", validTrainerForm())
	require.NoError(t, err)
	assert.Equal(t, 5, rec.Experience)
	assert.Equal(t, "arjun@example.com", rec.Email)

	creates, lists := store.calls()
	assert.Equal(t, 1, creates)
	assert.Equal(t, 1, lists)
	require.Len(t, w.Items(), 1)
	assert.Equal(t, "Arjun Sharma", w.Items()[0].Name)
	assert.Equal(t, StateIdle, w.State())
}

func TestWorkflow_StrictIntegerParsing(t *testing.T) {
	for _, exp := range []string{"5abc", "1.5", "", "-1", "five"} {
		form := validTrainerForm()
		form.Experience = exp
		_, err := form.Build("")
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, "experience %q", exp)
	}
	form := validTrainerForm()
	form.Experience = " 12 "
	tr, err := form.Build("")
	require.NoError(t, err)
	assert.Equal(t, 12, tr.Experience)
}

func TestWorkflow_WriteFailureKeepsList(t *testing.T) {
	store := newFakeTrainers(domain.Trainer{ID: "t1", Name: "A"}, domain.Trainer{ID: "t2", Name: "B"})
	w := NewWorkflow[domain.Trainer]("trainers", store)
	_, err := w.Load(context.Background())
	require.NoError(t, err)
	before := w.Items()

	store.createErr = errors.New("primary down")
	_, err = w.Submit(context.Background(), "", validTrainerForm())
	require.Error(t, err)

	assert.Equal(t, before, w.Items())
	_, lists := store.calls()
	assert.Equal(t, 1, lists, "no refresh after a failed write")
	assert.Equal(t, "primary down", w.LastError())
}

func TestWorkflow_RefreshFailureAfterWrite(t *testing.T) {
	store := newFakeTrainers(domain.Trainer{ID: "t1", Name: "A"})
	w := NewWorkflow[domain.Trainer]("trainers", store)
	_, err := w.Load(context.Background())
	require.NoError(t, err)

	store.listErr = errors.New("timeout")
	_, err = w.Submit(context.Background(), "", validTrainerForm())
	assert.ErrorIs(t, err, ErrRefreshFailed)
	assert.Len(t, w.Items(), 1)
}

func TestWorkflow_UpdateUsesID(t *testing.T) {
	store := newFakeTrainers(domain.Trainer{ID: "t1", Name: "Old"})
	w := NewWorkflow[domain.Trainer]("trainers", store)

	_, err := w.Submit(context.Background(), "t1", validTrainerForm())
	require.NoError(t, err)
	assert.Equal(t, 1, store.updates)
	assert.Equal(t, "Arjun Sharma", w.Items()[0].Name)
}

func TestWorkflow_SubmitIsNotReentrant(t *testing.T) {
	store := newFakeTrainers()
	store.block = make(chan struct{})
	store.entered = make(chan struct{}, 1)
	w := NewWorkflow[domain.Trainer]("trainers", store)

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background(), "", validTrainerForm())
		done <- err
	}()
	<-store.entered
	assert.Equal(t, StateSubmitting, w.State())

	_, err := w.Submit(context.Background(), "", validTrainerForm())
	assert.ErrorIs(t, err, ErrSubmitInProgress)
	assert.ErrorIs(t, w.Delete(context.Background(), "x", true), ErrSubmitInProgress)

	close(store.block)
	require.NoError(t, <-done)
	creates, _ := store.calls()
	assert.Equal(t, 1, creates)
	assert.Equal(t, StateIdle, w.State())
}

func TestWorkflow_DeleteNeedsConfirmation(t *testing.T) {
	store := newFakeTrainers(domain.Trainer{ID: "t1", Name: "A"})
	w := NewWorkflow[domain.Trainer]("trainers", store)

	assert.ErrorIs(t, w.Delete(context.Background(), "t1", false), ErrConfirmationRequired)
	assert.Zero(t, store.deletes)

	require.NoError(t, w.Delete(context.Background(), "t1", true))
	assert.Equal(t, 1, store.deletes)
	assert.Empty(t, w.Items())
}

func TestWorkflow_LoadFailureKeepsPreviousList(t *testing.T) {
	store := newFakeTrainers(domain.Trainer{ID: "t1"})
	w := NewWorkflow[domain.Trainer]("trainers", store)
	_, err := w.Load(context.Background())
	require.NoError(t, err)

	store.listErr = errors.New("down")
	_, err = w.Load(context.Background())
	require.Error(t, err)
	assert.Len(t, w.Items(), 1)
}

func TestScheduleForm_Build(t *testing.T) {
	s, err := ScheduleForm{
		Name: "Yoga", Day: "monday", Time: "7:05", Duration: "45", MaxParticipants: "20",
	}.Build("")
	require.NoError(t, err)
	assert.Equal(t, domain.Monday, s.Day)
	assert.Equal(t, "07:05", s.Time)
	assert.Nil(t, s.TrainerID)
	assert.Equal(t, domain.DefaultClassLocation, s.Location)

	_, err = ScheduleForm{
		Name: "Yoga", Day: "Funday", Time: "25:00", Duration: "0", MaxParticipants: "x",
	}.Build("")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	fields := map[string]bool{}
	for _, fe := range verr.Errors {
		fields[fe.Field] = true
	}
	assert.Equal(t, map[string]bool{"day": true, "time": true, "duration": true, "max_participants": true}, fields)
}

func TestMealPlanForm_Build(t *testing.T) {
	p, err := MealPlanForm{
		Title: "Cut", Category: "weight-loss", Calories: "1800", Protein: "120", Carbs: "150", Fat: "60",
		Meals: "Breakfast: oats\n\n  Lunch: salad  \n",
	}.Build("mp1")
	require.NoError(t, err)
	assert.Equal(t, "mp1", p.ID)
	assert.Equal(t, domain.CategoryWeightLoss, p.Category)
	require.NotNil(t, p.Protein)
	assert.Equal(t, 120, *p.Protein)
	require.Len(t, p.Meals, 2)
	assert.Equal(t, "Lunch: salad", p.Meals[1].Text)

	_, err = MealPlanForm{Title: "X", Category: "Paleo", Calories: "1", Protein: "1", Carbs: "1", Fat: "1"}.Build("")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Errors[0].Field)
}

func TestMembershipForm_Build(t *testing.T) {
	m, err := MembershipForm{Name: "Gold", Price: "3999", Features: "Gym\nPool", IsPopular: true}.Build("")
	require.NoError(t, err)
	assert.Equal(t, 3999.0, m.Price)
	assert.Equal(t, DefaultFormDuration, m.Duration)
	assert.Equal(t, []string{"Gym", "Pool"}, m.Features)
	assert.True(t, m.IsPopular)

	_, err = MembershipForm{Name: "Gold", Price: "39.99"}.Build("")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
