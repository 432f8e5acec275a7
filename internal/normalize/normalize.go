// Package normalize turns records read from either backing store into the
// single canonical in-memory shape. Every function here is pure and never
// fails: malformed stored data degrades to a textual fallback or an empty list.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"alcyxob/fitness-center/internal/domain"
)

// Placeholder macro split shown when a meal plan has no gram values.
const (
	DefaultProteinPercentage = "30%"
	DefaultCarbsPercentage   = "40%"
	DefaultFatPercentage     = "30%"
)

// DefaultMembershipDuration is assumed when a plan has no duration.
const DefaultMembershipDuration = "1 month"

// RawMealPlan is a meal plan as a store adapter read it: scalar fields
// already typed, meals still in whatever shape the store keeps them.
type RawMealPlan struct {
	Plan  domain.MealPlan
	Meals domain.ListField
}

// RawMembershipPlan is the membership counterpart of RawMealPlan.
type RawMembershipPlan struct {
	Plan     domain.MembershipPlan
	Features domain.ListField
}

// MacroDisplay holds the display-only macro percentages of a meal plan.
type MacroDisplay struct {
	ProteinPercentage string `json:"proteinPercentage"`
	CarbsPercentage   string `json:"carbsPercentage"`
	FatsPercentage    string `json:"fatsPercentage"`
}

// MealPlan returns the canonical meal plan for a raw record.
func MealPlan(raw RawMealPlan) domain.MealPlan {
	p := raw.Plan
	p.Category = strings.TrimSpace(p.Category)
	p.Meals = Meals(raw.Meals)
	return p
}

// MembershipPlan returns the canonical membership plan for a raw record.
func MembershipPlan(raw RawMembershipPlan) domain.MembershipPlan {
	p := raw.Plan
	p.Features = Features(raw.Features)
	if strings.TrimSpace(p.Duration) == "" {
		p.Duration = DefaultMembershipDuration
	}
	return p
}

// Schedule fills display defaults and canonicalises the weekday spelling.
// The trainer reference is left as is; resolution happens at read time.
func Schedule(s domain.ClassSchedule) domain.ClassSchedule {
	if d, ok := domain.ParseWeekday(string(s.Day)); ok {
		s.Day = d
	}
	if s.Duration <= 0 {
		s.Duration = domain.DefaultClassDuration
	}
	if strings.TrimSpace(s.Location) == "" {
		s.Location = domain.DefaultClassLocation
	}
	if strings.TrimSpace(s.Level) == "" {
		s.Level = domain.DefaultClassLevel
	}
	if s.TrainerID != nil && strings.TrimSpace(*s.TrainerID) == "" {
		s.TrainerID = nil
	}
	return s
}

// User fills the default role.
func User(u domain.User) domain.User {
	u.Role = domain.ParseRole(string(u.Role))
	u.Email = strings.TrimSpace(u.Email)
	return u
}

// Macros derives the percentage strings shown next to a meal plan. A gram
// value of zero counts as absent.
func Macros(p domain.MealPlan) MacroDisplay {
	return MacroDisplay{
		ProteinPercentage: percentOr(p.Protein, DefaultProteinPercentage),
		CarbsPercentage:   percentOr(p.Carbs, DefaultCarbsPercentage),
		FatsPercentage:    percentOr(p.Fat, DefaultFatPercentage),
	}
}

func percentOr(v *int, fallback string) string {
	if v == nil || *v == 0 {
		return fallback
	}
	return strconv.Itoa(*v) + "%"
}

// Meals converts a stored meals value into an ordered list of entries.
// Sequences pass through; text is decoded as JSON, then split by line.
func Meals(f domain.ListField) []domain.MealEntry {
	items := sequence(f)
	meals := make([]domain.MealEntry, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case nil:
			continue
		case string:
			meals = append(meals, domain.TextMeal(v))
		case map[string]any:
			meals = append(meals, domain.RecordMeal(mealRecord(v)))
		case []any:
			// nested arrays carry no meal meaning
			continue
		default:
			meals = append(meals, domain.TextMeal(scalarString(v)))
		}
	}
	return meals
}

// Features converts a stored features value into an ordered list of strings.
func Features(f domain.ListField) []string {
	items := sequence(f)
	features := make([]string, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case nil, []any:
			continue
		case string:
			features = append(features, v)
		case map[string]any:
			if s := firstString(v, "name", "title", "feature", "description"); s != "" {
				features = append(features, s)
			}
		default:
			features = append(features, scalarString(v))
		}
	}
	return features
}

// Lines splits newline-separated text into trimmed, non-empty lines. It is
// also how admin textareas become lists.
func Lines(text string) []string {
	parts := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Category maps slug and spacing variants ("weight_loss", "low-carb") onto
// the fixed enumeration. Values outside it are returned trimmed.
func Category(s string) string {
	s = strings.TrimSpace(s)
	key := categoryKey(s)
	for _, c := range domain.MealCategories {
		if categoryKey(c) == key {
			return c
		}
	}
	switch key {
	case "balanced":
		return domain.CategoryBalanced
	case "lowcarb":
		return domain.CategoryLowCarb
	}
	return s
}

// IsKnownCategory reports whether s belongs to the fixed enumeration once canonicalised.
func IsKnownCategory(s string) bool {
	c := Category(s)
	for _, known := range domain.MealCategories {
		if c == known {
			return true
		}
	}
	return false
}

func categoryKey(s string) string {
	r := strings.NewReplacer("_", "", "-", "", " ", "")
	return strings.ToLower(r.Replace(s))
}

func sequence(f domain.ListField) []any {
	if f.Parsed() {
		return f.Items()
	}
	return decodeText(f.Raw())
}

// decodeText accepts a JSON array, a JSON string holding newline text, or
// plain newline text. A quoted single line or a bare null is plain text:
// only an encoded string with line breaks is unwrapped.
func decodeText(text string) []any {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
		switch v := decoded.(type) {
		case []any:
			return v
		case string:
			if strings.Contains(v, "\n") {
				return linesAsItems(v)
			}
		case map[string]any:
			return []any{v}
		}
	}
	return linesAsItems(text)
}

func linesAsItems(text string) []any {
	lines := Lines(text)
	items := make([]any, len(lines))
	for i, l := range lines {
		items[i] = l
	}
	return items
}

func mealRecord(m map[string]any) domain.MealRecord {
	return domain.MealRecord{
		Name:        firstString(m, "name", "meal", "title"),
		Time:        firstString(m, "time"),
		Description: firstString(m, "description", "details"),
		Calories:    toInt(m["calories"]),
	}
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			if s := strings.TrimSpace(scalarString(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

func scalarString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func toInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int32:
		return int(x)
	case int64:
		return int(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0
		}
		return int(math.Round(x))
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n)
		}
		if f, err := x.Float64(); err == nil {
			return int(math.Round(f))
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return n
		}
	}
	return 0
}
