package domain

import "time"

// Trainer is a coach shown on the public trainers page and referenced by class schedules.
type Trainer struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"` // unique
	Specialization string    `json:"specialization"`
	Experience     int       `json:"experience"` // years, never negative
	Bio            string    `json:"bio"`
	ImageURL       string    `json:"image_url"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
