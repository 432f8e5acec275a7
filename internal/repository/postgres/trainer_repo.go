package postgres

import (
	"time"

	"gorm.io/gorm"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
)

type trainerRow struct {
	ID             string `gorm:"primaryKey;type:varchar(36)"`
	Name           string `gorm:"not null;index"`
	Email          string `gorm:"not null;uniqueIndex"`
	Specialization string
	Experience     int
	Bio            string `gorm:"type:text"`
	ImageURL       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (trainerRow) TableName() string { return "trainers" }

func (r *trainerRow) toDomain() domain.Trainer {
	return domain.Trainer{
		ID:             r.ID,
		Name:           r.Name,
		Email:          r.Email,
		Specialization: r.Specialization,
		Experience:     r.Experience,
		Bio:            r.Bio,
		ImageURL:       r.ImageURL,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func newTrainerRow(t *domain.Trainer) trainerRow {
	return trainerRow{
		ID:             t.ID,
		Name:           t.Name,
		Email:          t.Email,
		Specialization: t.Specialization,
		Experience:     t.Experience,
		Bio:            t.Bio,
		ImageURL:       t.ImageURL,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// NewTrainerRepository returns the primary trainer store, ordered by name.
func NewTrainerRepository(db *gorm.DB) repository.TrainerStore {
	return &table[domain.Trainer, trainerRow]{
		db:       db,
		order:    "name asc",
		key:      func(r *trainerRow) *string { return &r.ID },
		toDomain: (*trainerRow).toDomain,
		toRow: func(t *domain.Trainer) (trainerRow, error) {
			return newTrainerRow(t), nil
		},
	}
}
