package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise entry not found")
	ErrWorkoutNotFound  = errors.New("no exercises logged on that date")
)

// Distance units accepted for cardio entries.
const (
	UnitKilometres = "km"
	UnitMiles      = "mi"
)

// ExerciseOption is one exercise the logger offers.
type ExerciseOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ExerciseCatalog lists the offered exercises per category.
var ExerciseCatalog = map[domain.ExerciseCategory][]ExerciseOption{
	domain.CategoryStrength: {
		{"bench-press", "Bench Press"},
		{"squat", "Squat"},
		{"deadlift", "Deadlift"},
		{"shoulder-press", "Shoulder Press"},
		{"pull-up", "Pull-up"},
	},
	domain.CategoryCardio: {
		{"running", "Running"},
		{"cycling", "Cycling"},
		{"rowing", "Rowing"},
		{"swimming", "Swimming"},
		{"jump-rope", "Jump Rope"},
	},
	domain.CategoryFlexibility: {
		{"yoga", "Yoga"},
		{"static-stretching", "Static Stretching"},
		{"dynamic-stretching", "Dynamic Stretching"},
		{"foam-rolling", "Foam Rolling"},
	},
	domain.CategoryBalance: {
		{"single-leg-stand", "Single Leg Stand"},
		{"bosu-ball", "Bosu Ball Exercises"},
		{"stability-ball", "Stability Ball Exercises"},
		{"balance-board", "Balance Board"},
	},
}

// ExerciseForm is one entry as typed into the logger. Strength entries need
// sets and reps, every other category a duration.
type ExerciseForm struct {
	Category string `json:"category" validate:"required,oneof=strength cardio flexibility balance"`
	Exercise string `json:"exercise" validate:"required,max=80"`
	Sets     string `json:"sets" validate:"required_if=Category strength,omitempty,intgte=1"`
	Reps     string `json:"reps" validate:"required_if=Category strength,omitempty,intgte=1"`
	Weight   string `json:"weight" validate:"omitempty,intgte=0"`
	Duration string `json:"duration" validate:"required_unless=Category strength,omitempty,intgte=1"`
	Distance string `json:"distance" validate:"omitempty,intgte=0"`
	Unit     string `json:"unit" validate:"omitempty,oneof=km mi"`
}

// ExerciseService is the Pro Trainer exercise logger.
type ExerciseService interface {
	// Log records an entry in today's workout.
	Log(ctx context.Context, userID string, form ExerciseForm) (*domain.ExerciseLog, error)
	// History returns the user's workouts, newest date first.
	History(ctx context.Context, userID string) ([]domain.Workout, error)
	DeleteEntry(ctx context.Context, userID, entryID string) error
	DeleteWorkout(ctx context.Context, userID, date string) error
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	logRepo repository.ExerciseLogRepository
	now     func() time.Time
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(logRepo repository.ExerciseLogRepository) ExerciseService {
	return &exerciseService{
		logRepo: logRepo,
		now:     time.Now,
	}
}

func (s *exerciseService) Log(ctx context.Context, userID string, form ExerciseForm) (*domain.ExerciseLog, error) {
	entry, err := buildExercise(form)
	if err != nil {
		return nil, err
	}
	entry.UserID = userID
	entry.Date = s.now().UTC().Format(time.DateOnly)

	if err := s.logRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *exerciseService) History(ctx context.Context, userID string) ([]domain.Workout, error) {
	entries, err := s.logRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return groupWorkouts(entries), nil
}

func (s *exerciseService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	err := s.logRepo.Delete(ctx, userID, entryID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrExerciseNotFound
	}
	return err
}

func (s *exerciseService) DeleteWorkout(ctx context.Context, userID, date string) error {
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "date", Message: "must be a date in YYYY-MM-DD format"}}}
	}
	n, err := s.logRepo.DeleteByDate(ctx, userID, date)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && n == 0) {
		return ErrWorkoutNotFound
	}
	return err
}

// buildExercise validates a form and keeps only the numbers its category
// uses. Category and unit are matched case-insensitively.
func buildExercise(f ExerciseForm) (*domain.ExerciseLog, error) {
	f.Category = strings.ToLower(strings.TrimSpace(f.Category))
	f.Exercise = strings.TrimSpace(f.Exercise)
	f.Unit = strings.ToLower(strings.TrimSpace(f.Unit))
	if err := validateForm(f); err != nil {
		return nil, err
	}

	category := domain.ExerciseCategory(f.Category)
	entry := &domain.ExerciseLog{Name: exerciseLabel(ExerciseCatalog[category], f.Exercise), Category: category}
	switch category {
	case domain.CategoryStrength:
		entry.Sets = mustInt(f.Sets)
		entry.Reps = mustInt(f.Reps)
		entry.Weight = mustInt(f.Weight)
	case domain.CategoryCardio:
		entry.Duration = mustInt(f.Duration)
		entry.Distance = mustInt(f.Distance)
		entry.Unit = UnitKilometres
		if f.Unit == UnitMiles {
			entry.Unit = UnitMiles
		}
	default:
		entry.Duration = mustInt(f.Duration)
	}
	return entry, nil
}

// exerciseLabel resolves a catalog value such as "bench-press" to its label.
// Other names are kept as typed.
func exerciseLabel(options []ExerciseOption, exercise string) string {
	exercise = strings.TrimSpace(exercise)
	for _, o := range options {
		if strings.EqualFold(o.Value, exercise) || strings.EqualFold(o.Label, exercise) {
			return o.Label
		}
	}
	return exercise
}

// groupWorkouts groups entries by date, newest date first, keeping each
// day's entries in the order they were logged.
func groupWorkouts(entries []domain.ExerciseLog) []domain.Workout {
	byDate := make(map[string]*domain.Workout)
	var dates []string
	for _, e := range entries {
		w, ok := byDate[e.Date]
		if !ok {
			w = &domain.Workout{Date: e.Date}
			byDate[e.Date] = w
			dates = append(dates, e.Date)
		}
		w.Exercises = append(w.Exercises, e)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	workouts := make([]domain.Workout, len(dates))
	for i, d := range dates {
		w := byDate[d]
		sort.SliceStable(w.Exercises, func(a, b int) bool {
			return w.Exercises[a].CreatedAt.Before(w.Exercises[b].CreatedAt)
		})
		workouts[i] = *w
	}
	return workouts
}
