package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/normalize"
	"alcyxob/fitness-center/internal/repository"
)

type mealPlanRow struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"index"`
	Calories    int
	Protein     *int
	Carbs       *int
	Fat         *int
	ImageURL    string
	Meals       string `gorm:"type:text"` // JSON-encoded list of meal entries
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (mealPlanRow) TableName() string { return "meal_plans" }

func (r *mealPlanRow) toDomain() domain.MealPlan {
	return normalize.MealPlan(normalize.RawMealPlan{
		Plan: domain.MealPlan{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Category:    r.Category,
			Calories:    r.Calories,
			Protein:     r.Protein,
			Carbs:       r.Carbs,
			Fat:         r.Fat,
			ImageURL:    r.ImageURL,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		},
		Meals: domain.RawList(r.Meals),
	})
}

func newMealPlanRow(p *domain.MealPlan) (mealPlanRow, error) {
	meals := p.Meals
	if meals == nil {
		meals = []domain.MealEntry{}
	}
	encoded, err := json.Marshal(meals)
	if err != nil {
		return mealPlanRow{}, fmt.Errorf("encode meals: %w", err)
	}
	return mealPlanRow{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Calories:    p.Calories,
		Protein:     p.Protein,
		Carbs:       p.Carbs,
		Fat:         p.Fat,
		ImageURL:    p.ImageURL,
		Meals:       string(encoded),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

// NewMealPlanRepository returns the primary meal plan store, ordered by category.
func NewMealPlanRepository(db *gorm.DB) repository.MealPlanStore {
	return &table[domain.MealPlan, mealPlanRow]{
		db:       db,
		order:    "category asc",
		key:      func(r *mealPlanRow) *string { return &r.ID },
		toDomain: (*mealPlanRow).toDomain,
		toRow:    newMealPlanRow,
	}
}
