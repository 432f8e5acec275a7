package service

import (
	"alcyxob/fitness-center/internal/domain"
)

// Records shown when no store can answer, so a public page is never blank.
// Responses built from them are flagged as fallback.

func fallbackTrainers() []domain.Trainer {
	return []domain.Trainer{
		{
			ID:             "t1",
			Name:           "Arjun Sharma",
			Email:          "arjun.sharma@example.com",
			Specialization: "Strength Training",
			Experience:     8,
			Bio:            "Former national-level athlete with expertise in strength and conditioning.",
			ImageURL:       "https://placehold.co/600x800/jpeg?text=Trainer+1",
		},
		{
			ID:             "t2",
			Name:           "Priya Patel",
			Email:          "priya.patel@example.com",
			Specialization: "Yoga & Flexibility",
			Experience:     6,
			Bio:            "Internationally certified yoga instructor focused on functional mobility.",
			ImageURL:       "https://placehold.co/600x800/jpeg?text=Trainer+2",
		},
		{
			ID:             "t3",
			Name:           "Rahul Verma",
			Email:          "rahul.verma@example.com",
			Specialization: "HIIT & Functional Training",
			Experience:     5,
			Bio:            "Runs high-intensity interval and functional fitness programs for busy professionals.",
			ImageURL:       "https://placehold.co/600x800/jpeg?text=Trainer+3",
		},
	}
}

func fallbackSchedules() []domain.ClassSchedule {
	trainers := fallbackTrainers()
	arjun, priya, rahul := &trainers[0], &trainers[1], &trainers[2]
	class := func(id, name string, day domain.Weekday, at string, minutes int, t *domain.Trainer, location, desc string) domain.ClassSchedule {
		return domain.ClassSchedule{
			ID: id, Name: name, Day: day, Time: at, Duration: minutes,
			Location: location, MaxParticipants: 20, Level: domain.DefaultClassLevel,
			Description: desc, TrainerID: &t.ID, Trainer: t,
		}
	}
	return []domain.ClassSchedule{
		class("s1", "Yoga Flow", domain.Monday, "08:00", 60, rahul, "Studio 1", "A gentle flow yoga class suitable for all levels."),
		class("s2", "HIIT Workout", domain.Monday, "18:00", 60, arjun, "Main Floor", "High-intensity interval training to maximize calorie burn."),
		class("s3", "Strength Training", domain.Tuesday, "10:00", 60, arjun, "Weight Room", "Compound exercises for strength and muscle mass."),
		class("s4", "Spin Class", domain.Tuesday, "17:30", 60, arjun, "Spin Studio", "High-energy indoor cycling for cardiovascular fitness."),
		class("s5", "Pilates", domain.Wednesday, "09:00", 60, priya, "Studio 2", "Core-focused exercises for strength, flexibility and posture."),
		class("s6", "Bodybuilding", domain.Wednesday, "19:00", 60, arjun, "Weight Room", "Advanced muscle-building techniques for experienced lifters."),
		class("s7", "Weekend Warrior", domain.Saturday, "10:00", 90, arjun, "Main Floor", "A challenging full-body workout to kickstart your weekend."),
		class("s8", "Recovery Yoga", domain.Sunday, "09:00", 60, priya, "Studio 1", "Gentle stretching and relaxation after the week's workouts."),
	}
}

func fallbackMealPlans() []domain.MealPlan {
	meal := func(name, at, desc string, kcal int) domain.MealEntry {
		return domain.RecordMeal(domain.MealRecord{Name: name, Time: at, Description: desc, Calories: kcal})
	}
	return []domain.MealPlan{
		{
			ID: "mp1", Title: "Weight Loss Meal Plan", Category: domain.CategoryWeightLoss, Calories: 1800,
			Description: "A calorie-deficit meal plan designed to promote healthy weight loss.",
			ImageURL:    "https://placehold.co/600x400/jpeg?text=Weight+Loss+Meal+Plan",
			Meals: []domain.MealEntry{
				meal("Breakfast", "8:00 AM", "Greek yogurt with berries and a tablespoon of honey", 300),
				meal("Lunch", "12:30 PM", "Grilled chicken salad with olive oil dressing", 450),
				meal("Dinner", "7:00 PM", "Baked salmon with steamed vegetables", 550),
			},
		},
		{
			ID: "mp2", Title: "Muscle Gain Meal Plan", Category: domain.CategoryMuscleGain, Calories: 3000,
			Description: "A protein-rich meal plan designed to support muscle growth and recovery.",
			ImageURL:    "https://placehold.co/600x400/jpeg?text=Muscle+Gain+Meal+Plan",
			Meals: []domain.MealEntry{
				meal("Breakfast", "7:00 AM", "Protein oatmeal with banana and peanut butter", 500),
				meal("Lunch", "1:00 PM", "Grilled steak with brown rice and vegetables", 700),
				meal("Dinner", "7:00 PM", "Grilled chicken, sweet potato and broccoli", 650),
			},
		},
		{
			ID: "mp3", Title: "Vegetarian Meal Plan", Category: domain.CategoryVegetarian, Calories: 2000,
			Description: "A plant-based meal plan rich in nutrients and protein alternatives.",
			ImageURL:    "https://placehold.co/600x400/jpeg?text=Vegetarian+Meal+Plan",
			Meals: []domain.MealEntry{
				meal("Breakfast", "8:00 AM", "Vegetable omelette with whole grain toast", 350),
				meal("Lunch", "12:30 PM", "Lentil soup with a side salad", 450),
				meal("Dinner", "7:00 PM", "Tofu stir-fry with mixed vegetables and brown rice", 550),
			},
		},
	}
}

// Fallback plan ids, also accepted by the payment page.
const (
	PlanBasic            = "basic"
	PlanPremium          = "premium"
	PlanPremiumQuarterly = "premium-quarterly"
)

func fallbackMemberships() []domain.MembershipPlan {
	base := []string{"Access to gym equipment", "Locker room access", "Free WiFi", "Fitness assessment", "Mobile app access"}
	with := func(extra ...string) []string {
		return append(append([]string{}, base...), extra...)
	}
	return []domain.MembershipPlan{
		{
			ID: PlanBasic, Name: "Basic", Description: "Essential access to gym facilities",
			Price: 2499, Duration: "1 month", Features: with(),
		},
		{
			ID: PlanPremium, Name: "Premium", Description: "Full access with additional perks",
			Price: 3999, Duration: "1 month", IsPopular: true,
			Features: with("Unlimited group classes", "1 personal training session/month", "Towel service"),
		},
		{
			ID: PlanPremiumQuarterly, Name: "Premium Quarterly", Description: "Premium plan with quarterly commitment",
			Price: 10999, Duration: "3 months",
			Features: with("Unlimited group classes", "3 personal training sessions/quarter", "Towel service",
				"Nutrition consultation", "2 guest passes per quarter"),
		},
	}
}

// findFallbackPlan returns the built-in plan with the given id.
func findFallbackPlan(id string) (domain.MembershipPlan, bool) {
	for _, p := range fallbackMemberships() {
		if p.ID == id {
			return p, true
		}
	}
	return domain.MembershipPlan{}, false
}

// fallbackPlan returns the built-in plan with the given id, or basic.
func fallbackPlan(id string) domain.MembershipPlan {
	if p, ok := findFallbackPlan(id); ok {
		return p
	}
	return fallbackMemberships()[0]
}

// SampleCatalog is the built-in catalog. fitctl seeds an empty store with it.
type SampleCatalog struct {
	Trainers    []domain.Trainer
	Schedules   []domain.ClassSchedule
	MealPlans   []domain.MealPlan
	Memberships []domain.MembershipPlan
}

func Samples() SampleCatalog {
	return SampleCatalog{
		Trainers:    fallbackTrainers(),
		Schedules:   fallbackSchedules(),
		MealPlans:   fallbackMealPlans(),
		Memberships: fallbackMemberships(),
	}
}
