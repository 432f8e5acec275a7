package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// MealCategory values accepted by the admin meal plan form.
const (
	CategoryWeightLoss = "Weight Loss"
	CategoryMuscleGain = "Muscle Gain"
	CategoryBalanced   = "Balanced Diet"
	CategoryVegetarian = "Vegetarian"
	CategoryVegan      = "Vegan"
	CategoryKeto       = "Keto"
	CategoryLowCarb    = "Low Carb"
)

// MealCategories is the fixed enumeration, in the order the admin form lists it.
var MealCategories = []string{
	CategoryWeightLoss,
	CategoryMuscleGain,
	CategoryBalanced,
	CategoryVegetarian,
	CategoryVegan,
	CategoryKeto,
	CategoryLowCarb,
}

// MealRecord is the structured form of a meal entry.
type MealRecord struct {
	Name        string `json:"name" bson:"name"`
	Time        string `json:"time,omitempty" bson:"time,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Calories    int    `json:"calories,omitempty" bson:"calories,omitempty"`
}

// MealEntry is one item of a meal plan: a plain line such as
// "Breakfast: oats with berries", or a structured record.
type MealEntry struct {
	Text   string
	Record *MealRecord
}

// TextMeal builds a plain entry.
func TextMeal(s string) MealEntry { return MealEntry{Text: s} }

// RecordMeal builds a structured entry.
func RecordMeal(r MealRecord) MealEntry { return MealEntry{Record: &r} }

// IsStructured reports whether the entry carries a record.
func (m MealEntry) IsStructured() bool { return m.Record != nil }

// String renders the entry as a single line, which is also how the admin
// form edits it.
func (m MealEntry) String() string {
	if m.Record == nil {
		return m.Text
	}
	var b strings.Builder
	b.WriteString(m.Record.Name)
	if m.Record.Time != "" {
		b.WriteString(" (" + m.Record.Time + ")")
	}
	if m.Record.Description != "" {
		b.WriteString(": " + m.Record.Description)
	}
	return b.String()
}

// MarshalJSON writes plain entries as strings and records as objects, so a
// meals array keeps whichever shape it was authored in.
func (m MealEntry) MarshalJSON() ([]byte, error) {
	if m.Record != nil {
		return json.Marshal(m.Record)
	}
	return json.Marshal(m.Text)
}

// UnmarshalJSON accepts either a JSON string or a record object.
func (m *MealEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var r MealRecord
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		*m = MealEntry{Record: &r}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*m = MealEntry{Text: s}
	return nil
}

// MealPlan is a nutrition plan. Macro grams are optional; when absent the
// display falls back to placeholder percentages.
type MealPlan struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Calories    int         `json:"calories"`
	Protein     *int        `json:"protein"`
	Carbs       *int        `json:"carbs"`
	Fat         *int        `json:"fat"`
	ImageURL    string      `json:"image_url"`
	Meals       []MealEntry `json:"meals"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// MealLines renders the meals as the newline-separated text the admin form edits.
func (p *MealPlan) MealLines() string {
	lines := make([]string, len(p.Meals))
	for i, m := range p.Meals {
		lines[i] = m.String()
	}
	return strings.Join(lines, "\n")
}
