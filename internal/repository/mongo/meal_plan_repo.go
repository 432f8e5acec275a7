package mongo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/normalize"
)

const mealPlanCollectionName = "meal_plans"

type mealPlanDoc struct {
	ID          string        `bson:"_id"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	Category    string        `bson:"category"`
	Calories    int           `bson:"calories"`
	Protein     *int          `bson:"protein"`
	Carbs       *int          `bson:"carbs"`
	Fat         *int          `bson:"fat"`
	ImageURL    string        `bson:"image_url"`
	Meals       bson.RawValue `bson:"meals"` // array of strings or meal documents
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}

func (d *mealPlanDoc) toDomain() domain.MealPlan {
	return normalize.MealPlan(normalize.RawMealPlan{
		Plan: domain.MealPlan{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			Category:    d.Category,
			Calories:    d.Calories,
			Protein:     d.Protein,
			Carbs:       d.Carbs,
			Fat:         d.Fat,
			ImageURL:    d.ImageURL,
			CreatedAt:   d.CreatedAt,
			UpdatedAt:   d.UpdatedAt,
		},
		Meals: listField(d.Meals),
	})
}

func newMealPlanDoc(p *domain.MealPlan) (mealPlanDoc, error) {
	meals, err := arrayValue(mealItems(p.Meals))
	if err != nil {
		return mealPlanDoc{}, fmt.Errorf("encode meals: %w", err)
	}
	return mealPlanDoc{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Calories:    p.Calories,
		Protein:     p.Protein,
		Carbs:       p.Carbs,
		Fat:         p.Fat,
		ImageURL:    p.ImageURL,
		Meals:       meals,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

// NewMongoMealPlanRepository returns the secondary meal plan store, ordered by category.
func NewMongoMealPlanRepository(db *mongo.Database) Mirror[domain.MealPlan] {
	return &collection[domain.MealPlan, mealPlanDoc]{
		coll:     db.Collection(mealPlanCollectionName),
		entity:   mealPlanCollectionName,
		sort:     bson.D{{Key: "category", Value: 1}},
		key:      func(d *mealPlanDoc) string { return d.ID },
		toDomain: (*mealPlanDoc).toDomain,
		toDoc:    newMealPlanDoc,
	}
}
