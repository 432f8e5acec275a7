package domain

import (
	"strings"
	"time"
)

// Weekday is the canonical day name stored on a class schedule.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists the seven days in calendar order, Monday first.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday matches a day name case-insensitively against the canonical names.
func ParseWeekday(s string) (Weekday, bool) {
	s = strings.TrimSpace(s)
	for _, d := range Weekdays {
		if strings.EqualFold(s, string(d)) {
			return d, true
		}
	}
	return "", false
}

// Index returns the calendar position (Monday = 0), or -1 for a non-canonical value.
func (d Weekday) Index() int {
	for i, w := range Weekdays {
		if strings.EqualFold(string(d), string(w)) {
			return i
		}
	}
	return -1
}

// Matches reports whether d names the same day as other, ignoring case.
func (d Weekday) Matches(other Weekday) bool {
	return strings.EqualFold(strings.TrimSpace(string(d)), strings.TrimSpace(string(other)))
}

// Schedule display defaults used when a stored record leaves the field empty.
const (
	DefaultClassDuration = 60 // minutes
	DefaultClassLocation = "Main Gym"
	DefaultClassLevel    = "All Levels"
	UnknownInstructor    = "Unknown Instructor"
)

// ClassSchedule is one recurring weekly class. The end time is derived from
// Time and Duration and never stored.
type ClassSchedule struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Day             Weekday `json:"day"`
	Time            string  `json:"time"`     // HH:MM
	Duration        int     `json:"duration"` // minutes
	Location        string  `json:"location"`
	MaxParticipants int     `json:"max_participants"`
	Level           string  `json:"level,omitempty"`
	Description     string  `json:"description,omitempty"`

	// TrainerID is a weak reference: the trainer may have been deleted since.
	TrainerID *string `json:"trainer_id"`
	// Trainer is populated only when the source joins it; nil otherwise.
	Trainer *Trainer `json:"trainer"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasTrainer reports whether the schedule carries a non-empty trainer reference.
func (s *ClassSchedule) HasTrainer() bool {
	return s.TrainerID != nil && *s.TrainerID != ""
}
