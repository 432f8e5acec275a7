// internal/domain/exercise.go
package domain

import (
	"time"
)

// ExerciseCategory groups exercises by what the logger asks for.
type ExerciseCategory string

const (
	CategoryStrength    ExerciseCategory = "strength"    // sets and reps, optional weight
	CategoryCardio      ExerciseCategory = "cardio"      // duration, optional distance
	CategoryFlexibility ExerciseCategory = "flexibility" // duration
	CategoryBalance     ExerciseCategory = "balance"     // duration
)

// ExerciseCategories in the order the Pro Trainer page shows them.
var ExerciseCategories = []ExerciseCategory{CategoryStrength, CategoryCardio, CategoryFlexibility, CategoryBalance}

// ExerciseLog is one exercise a member recorded on a given day.
type ExerciseLog struct {
	ID       string           `bson:"_id" json:"id"`
	UserID   string           `bson:"userId" json:"userId"`
	Date     string           `bson:"date" json:"date"` // YYYY-MM-DD, the workout this entry belongs to
	Name     string           `bson:"name" json:"name"`
	Category ExerciseCategory `bson:"category" json:"category"`

	Sets   int `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps   int `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight int `bson:"weight,omitempty" json:"weight,omitempty"` // lbs

	Duration int    `bson:"duration,omitempty" json:"duration,omitempty"` // minutes
	Distance int    `bson:"distance,omitempty" json:"distance,omitempty"`
	Unit     string `bson:"unit,omitempty" json:"unit,omitempty"` // "km" or "mi"

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Workout is the set of exercises logged on one date.
type Workout struct {
	Date      string        `json:"date"`
	Exercises []ExerciseLog `json:"exercises"`
}
