package postgres

import (
	"time"

	"gorm.io/gorm"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/normalize"
	"alcyxob/fitness-center/internal/repository"
)

type scheduleRow struct {
	ID              string `gorm:"primaryKey;type:varchar(36)"`
	Name            string `gorm:"not null"`
	Day             string `gorm:"not null;index"`
	Time            string `gorm:"type:varchar(5);not null"`
	Duration        int
	Location        string
	MaxParticipants int
	Level           string
	Description     string      `gorm:"type:text"`
	TrainerID       *string     `gorm:"type:varchar(36);index"`
	Trainer         *trainerRow `gorm:"foreignKey:TrainerID"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (scheduleRow) TableName() string { return "class_schedules" }

func (r *scheduleRow) toDomain() domain.ClassSchedule {
	s := domain.ClassSchedule{
		ID:              r.ID,
		Name:            r.Name,
		Day:             domain.Weekday(r.Day),
		Time:            r.Time,
		Duration:        r.Duration,
		Location:        r.Location,
		MaxParticipants: r.MaxParticipants,
		Level:           r.Level,
		Description:     r.Description,
		TrainerID:       r.TrainerID,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	// a dangling reference preloads nothing and stays nil
	if r.Trainer != nil {
		t := r.Trainer.toDomain()
		s.Trainer = &t
	}
	return normalize.Schedule(s)
}

func newScheduleRow(s *domain.ClassSchedule) scheduleRow {
	return scheduleRow{
		ID:              s.ID,
		Name:            s.Name,
		Day:             string(s.Day),
		Time:            s.Time,
		Duration:        s.Duration,
		Location:        s.Location,
		MaxParticipants: s.MaxParticipants,
		Level:           s.Level,
		Description:     s.Description,
		TrainerID:       s.TrainerID,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// NewScheduleRepository returns the primary class schedule store. Records
// are ordered by day name as stored, which is alphabetical rather than
// calendar order, with the trainer joined.
func NewScheduleRepository(db *gorm.DB) repository.ScheduleStore {
	return &table[domain.ClassSchedule, scheduleRow]{
		db:       db,
		order:    "day asc",
		preloads: []string{"Trainer"},
		key:      func(r *scheduleRow) *string { return &r.ID },
		toDomain: (*scheduleRow).toDomain,
		toRow: func(s *domain.ClassSchedule) (scheduleRow, error) {
			return newScheduleRow(s), nil
		},
	}
}
