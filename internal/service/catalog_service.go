package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"alcyxob/fitness-center/internal/calc"
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/normalize"
)

// Data types accepted by the read query endpoint.
const (
	DataTrainers    = "trainers"
	DataMealPlans   = "meal-plans"
	DataSchedules   = "schedules"
	DataMemberships = "memberships"
)

var ErrUnknownDataType = errors.New("invalid data type requested")

// ListReader is the read side the catalog needs from a repository.
type ListReader[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// MembershipView is a plan with its price in both currencies.
type MembershipView struct {
	domain.MembershipPlan
	PriceINR float64 `json:"priceINR"`
	PriceUSD float64 `json:"priceUSD"`
}

// MealPlanView is a meal plan with its display macro percentages.
type MealPlanView struct {
	domain.MealPlan
	normalize.MacroDisplay
}

// ScheduleView is a class with its derived end time and resolved trainer name.
type ScheduleView struct {
	domain.ClassSchedule
	EndTime     string `json:"endTime"`
	TimeRange   string `json:"timeRange"`
	TrainerName string `json:"trainerName"`
}

// TimetableDay groups the classes held on one weekday.
type TimetableDay struct {
	Day     domain.Weekday `json:"day"`
	Classes []ScheduleView `json:"classes"`
}

// CatalogService serves the public, read-only pages. A read that no store
// can answer returns an error wrapping repository.ErrNoData; the Fallback*
// methods give the built-in records a caller may show instead.
type CatalogService interface {
	Data(ctx context.Context, dataType string) (any, error)
	Trainers(ctx context.Context) ([]domain.Trainer, error)
	Memberships(ctx context.Context) ([]MembershipView, error)
	MealPlans(ctx context.Context, category string) ([]MealPlanView, error)
	Schedules(ctx context.Context) ([]ScheduleView, error)
	Timetable(ctx context.Context) ([]TimetableDay, error)

	FallbackTrainers() []domain.Trainer
	FallbackMemberships() []MembershipView
	FallbackMealPlans(category string) []MealPlanView
	FallbackSchedules() []ScheduleView
}

type catalogService struct {
	trainers    ListReader[domain.Trainer]
	schedules   ListReader[domain.ClassSchedule]
	mealPlans   ListReader[domain.MealPlan]
	memberships ListReader[domain.MembershipPlan]
	converter   *calc.Converter
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(
	trainers ListReader[domain.Trainer],
	schedules ListReader[domain.ClassSchedule],
	mealPlans ListReader[domain.MealPlan],
	memberships ListReader[domain.MembershipPlan],
	converter *calc.Converter,
) CatalogService {
	return &catalogService{
		trainers:    trainers,
		schedules:   schedules,
		mealPlans:   mealPlans,
		memberships: memberships,
		converter:   converter,
	}
}

// Data returns the normalized records of one entity, in store order.
func (s *catalogService) Data(ctx context.Context, dataType string) (any, error) {
	switch dataType {
	case DataTrainers:
		return s.trainers.List(ctx)
	case DataMealPlans:
		return s.mealPlans.List(ctx)
	case DataSchedules:
		return s.schedules.List(ctx)
	case DataMemberships:
		return s.memberships.List(ctx)
	default:
		return nil, ErrUnknownDataType
	}
}

func (s *catalogService) Trainers(ctx context.Context) ([]domain.Trainer, error) {
	return s.trainers.List(ctx)
}

func (s *catalogService) Memberships(ctx context.Context) ([]MembershipView, error) {
	plans, err := s.memberships.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.membershipViews(plans), nil
}

func (s *catalogService) MealPlans(ctx context.Context, category string) ([]MealPlanView, error) {
	plans, err := s.mealPlans.List(ctx)
	if err != nil {
		return nil, err
	}
	return mealPlanViews(plans, category), nil
}

// Schedules fetches classes and trainers concurrently and joins them. The
// trainer list only improves name resolution, so its failure is not fatal.
func (s *catalogService) Schedules(ctx context.Context) ([]ScheduleView, error) {
	var (
		schedules []domain.ClassSchedule
		trainers  []domain.Trainer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		schedules, err = s.schedules.List(gctx)
		return err
	})
	g.Go(func() error {
		list, err := s.trainers.List(gctx)
		if err != nil {
			log.Printf("WARN: Trainers unavailable for schedule join: %v", err)
			return nil
		}
		trainers = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scheduleViews(schedules, trainers), nil
}

func (s *catalogService) Timetable(ctx context.Context) ([]TimetableDay, error) {
	views, err := s.Schedules(ctx)
	if err != nil {
		return nil, err
	}
	return timetable(views), nil
}

func (s *catalogService) FallbackTrainers() []domain.Trainer {
	return fallbackTrainers()
}

func (s *catalogService) FallbackMemberships() []MembershipView {
	return s.membershipViews(fallbackMemberships())
}

func (s *catalogService) FallbackMealPlans(category string) []MealPlanView {
	return mealPlanViews(fallbackMealPlans(), category)
}

func (s *catalogService) FallbackSchedules() []ScheduleView {
	return scheduleViews(fallbackSchedules(), fallbackTrainers())
}

func (s *catalogService) membershipViews(plans []domain.MembershipPlan) []MembershipView {
	views := make([]MembershipView, len(plans))
	for i, p := range plans {
		usd, _ := s.converter.FromINR(p.Price, calc.USD)
		views[i] = MembershipView{
			MembershipPlan: p,
			PriceINR:       calc.Round(p.Price, calc.INR),
			PriceUSD:       usd,
		}
	}
	return views
}

// mealPlanViews filters by category when one is given. Slug and display
// spellings of a category match each other.
func mealPlanViews(plans []domain.MealPlan, category string) []MealPlanView {
	want := normalize.Category(category)
	views := make([]MealPlanView, 0, len(plans))
	for _, p := range plans {
		if want != "" && !strings.EqualFold(normalize.Category(p.Category), want) {
			continue
		}
		views = append(views, MealPlanView{MealPlan: p, MacroDisplay: normalize.Macros(p)})
	}
	return views
}

func scheduleViews(schedules []domain.ClassSchedule, trainers []domain.Trainer) []ScheduleView {
	byID := make(map[string]domain.Trainer, len(trainers))
	for _, t := range trainers {
		byID[t.ID] = t
	}

	views := make([]ScheduleView, len(schedules))
	for i, sc := range schedules {
		sc = normalize.Schedule(sc)
		if sc.Trainer == nil && sc.HasTrainer() {
			if t, ok := byID[*sc.TrainerID]; ok {
				sc.Trainer = &t
			}
		}
		v := ScheduleView{ClassSchedule: sc, TrainerName: domain.UnknownInstructor}
		if sc.Trainer != nil && sc.Trainer.Name != "" {
			v.TrainerName = sc.Trainer.Name
		}
		if end, err := calc.EndTime(sc.Time, sc.Duration); err == nil {
			v.EndTime = end
			v.TimeRange, _ = calc.TimeRange(sc.Time, sc.Duration)
		} else {
			v.TimeRange = sc.Time
		}
		views[i] = v
	}
	return views
}

// timetable groups classes into the seven weekdays in calendar order,
// each day's classes by start time.
func timetable(views []ScheduleView) []TimetableDay {
	days := make([]TimetableDay, len(domain.Weekdays))
	for i, d := range domain.Weekdays {
		days[i] = TimetableDay{Day: d, Classes: []ScheduleView{}}
	}
	for _, v := range views {
		idx := v.Day.Index()
		if idx < 0 {
			continue
		}
		days[idx].Classes = append(days[idx].Classes, v)
	}
	for i := range days {
		classes := days[i].Classes
		sort.SliceStable(classes, func(a, b int) bool {
			return clockOrder(classes[a].Time) < clockOrder(classes[b].Time)
		})
	}
	return days
}

// clockOrder sorts unparseable times last.
func clockOrder(t string) int {
	m, err := calc.ParseClock(t)
	if err != nil {
		return 24 * 60
	}
	return m
}
