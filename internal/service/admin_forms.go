package service

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"alcyxob/fitness-center/internal/calc"
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/normalize"
)

// DefaultFormDuration is preselected on the membership form.
const DefaultFormDuration = "1 Month"

var formValidator = newFormValidator()

// newFormValidator reports fields by their json names and adds the rules the
// admin forms need on string input.
func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "int", func(fl validator.FieldLevel) bool {
		_, err := parseInt(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "intgte", func(fl validator.FieldLevel) bool {
		n, err := parseInt(fl.Field().String())
		if err != nil {
			return false
		}
		min, err := strconv.Atoi(fl.Param())
		return err == nil && n >= min
	})
	mustRegister(v, "clock", func(fl validator.FieldLevel) bool {
		_, err := calc.ParseClock(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "weekday", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseWeekday(fl.Field().String())
		return ok
	})
	mustRegister(v, "mealcategory", func(fl validator.FieldLevel) bool {
		return normalize.IsKnownCategory(fl.Field().String())
	})
	// card expiry as MM/YY
	mustRegister(v, "cardexpiry", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("01/06", fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// parseInt accepts only a whole decimal number, optionally space padded.
// "12abc" and "1.5" are rejected.
func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// validateForm runs the struct rules and converts failures into a
// *ValidationError.
func validateForm(form any) error {
	err := formValidator.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_unless":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "int":
		return "must be a whole number"
	case "intgte":
		return "must be a whole number of at least " + fe.Param()
	case "clock":
		return "must be a time in HH:MM format"
	case "weekday":
		return "must be a day of the week"
	case "mealcategory":
		return "must be one of: " + strings.Join(domain.MealCategories, ", ")
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "credit_card":
		return "must be a valid card number"
	case "cardexpiry":
		return "must be an expiry date in MM/YY format"
	case "number":
		return "must contain digits only"
	default:
		return "is invalid"
	}
}

// mustInt is used after validation has accepted the value.
func mustInt(s string) int {
	n, _ := parseInt(s)
	return n
}

// TrainerForm is the trainer admin form as submitted.
type TrainerForm struct {
	Name           string `json:"name" validate:"required,max=120"`
	Email          string `json:"email" validate:"required,email"`
	Specialization string `json:"specialization" validate:"required,max=120"`
	Experience     string `json:"experience" validate:"required,int,intgte=0"`
	Bio            string `json:"bio"`
	ImageURL       string `json:"image_url" validate:"omitempty,url"`
}

// Build validates the form and returns the trainer record.
func (f TrainerForm) Build(id string) (domain.Trainer, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Specialization = strings.TrimSpace(f.Specialization)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	if err := validateForm(f); err != nil {
		return domain.Trainer{}, err
	}
	return domain.Trainer{
		ID:             id,
		Name:           f.Name,
		Email:          strings.ToLower(f.Email),
		Specialization: f.Specialization,
		Experience:     mustInt(f.Experience),
		Bio:            strings.TrimSpace(f.Bio),
		ImageURL:       f.ImageURL,
	}, nil
}

// ScheduleForm is the class schedule admin form as submitted. An empty
// trainer_id leaves the class without an instructor.
type ScheduleForm struct {
	Name            string `json:"name" validate:"required,max=120"`
	Description     string `json:"description"`
	Day             string `json:"day" validate:"required,weekday"`
	Time            string `json:"time" validate:"required,clock"`
	Duration        string `json:"duration" validate:"required,int,intgte=1"`
	Location        string `json:"location"`
	TrainerID       string `json:"trainer_id"`
	MaxParticipants string `json:"max_participants" validate:"required,int,intgte=1"`
	Level           string `json:"level"`
}

func (f ScheduleForm) Build(id string) (domain.ClassSchedule, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Day = strings.TrimSpace(f.Day)
	f.Time = strings.TrimSpace(f.Time)
	if err := validateForm(f); err != nil {
		return domain.ClassSchedule{}, err
	}
	day, _ := domain.ParseWeekday(f.Day)
	start, _ := calc.ParseClock(f.Time)

	s := domain.ClassSchedule{
		ID:              id,
		Name:            f.Name,
		Description:     strings.TrimSpace(f.Description),
		Day:             day,
		Time:            calc.FormatClock(start),
		Duration:        mustInt(f.Duration),
		Location:        strings.TrimSpace(f.Location),
		MaxParticipants: mustInt(f.MaxParticipants),
		Level:           strings.TrimSpace(f.Level),
	}
	if tid := strings.TrimSpace(f.TrainerID); tid != "" {
		s.TrainerID = &tid
	}
	return normalize.Schedule(s), nil
}

// MealPlanForm is the meal plan admin form as submitted. Meals are entered
// one per line.
type MealPlanForm struct {
	Title       string `json:"title" validate:"required,max=160"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required,mealcategory"`
	Calories    string `json:"calories" validate:"required,int,intgte=0"`
	Protein     string `json:"protein" validate:"required,int,intgte=0"`
	Carbs       string `json:"carbs" validate:"required,int,intgte=0"`
	Fat         string `json:"fat" validate:"required,int,intgte=0"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	Meals       string `json:"meals"`
}

func (f MealPlanForm) Build(id string) (domain.MealPlan, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Category = strings.TrimSpace(f.Category)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	if err := validateForm(f); err != nil {
		return domain.MealPlan{}, err
	}
	protein, carbs, fat := mustInt(f.Protein), mustInt(f.Carbs), mustInt(f.Fat)

	lines := normalize.Lines(f.Meals)
	meals := make([]domain.MealEntry, len(lines))
	for i, l := range lines {
		meals[i] = domain.TextMeal(l)
	}
	return domain.MealPlan{
		ID:          id,
		Title:       f.Title,
		Description: strings.TrimSpace(f.Description),
		Category:    normalize.Category(f.Category),
		Calories:    mustInt(f.Calories),
		Protein:     &protein,
		Carbs:       &carbs,
		Fat:         &fat,
		ImageURL:    f.ImageURL,
		Meals:       meals,
	}, nil
}

// MembershipForm is the membership plan admin form as submitted. Features
// are entered one per line.
type MembershipForm struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description"`
	Price       string `json:"price" validate:"required,int,intgte=0"`
	Duration    string `json:"duration"`
	Features    string `json:"features"`
	IsPopular   bool   `json:"is_popular"`
}

func (f MembershipForm) Build(id string) (domain.MembershipPlan, error) {
	f.Name = strings.TrimSpace(f.Name)
	if err := validateForm(f); err != nil {
		return domain.MembershipPlan{}, err
	}
	duration := strings.TrimSpace(f.Duration)
	if duration == "" {
		duration = DefaultFormDuration
	}
	return domain.MembershipPlan{
		ID:          id,
		Name:        f.Name,
		Description: strings.TrimSpace(f.Description),
		Price:       float64(mustInt(f.Price)),
		Duration:    duration,
		Features:    normalize.Lines(f.Features),
		IsPopular:   f.IsPopular,
	}, nil
}
