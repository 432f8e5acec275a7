package postgres

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/normalize"
	"alcyxob/fitness-center/internal/repository"
)

type userRow struct {
	ID           string `gorm:"primaryKey;type:varchar(36)"`
	Email        string `gorm:"not null;uniqueIndex"`
	Name         string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(16);not null;default:user"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

func (r *userRow) toDomain() domain.User {
	return normalize.User(domain.User{
		ID:           r.ID,
		Email:        r.Email,
		Name:         r.Name,
		PasswordHash: r.PasswordHash,
		Role:         domain.Role(r.Role),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	})
}

func newUserRow(u *domain.User) (userRow, error) {
	return userRow{
		ID:           u.ID,
		Email:        strings.ToLower(strings.TrimSpace(u.Email)),
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         string(domain.ParseRole(string(u.Role))),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}, nil
}

type userRepository struct {
	*table[domain.User, userRow]
}

// NewUserRepository returns the primary account store, ordered by email.
func NewUserRepository(db *gorm.DB) repository.UserStore {
	return &userRepository{
		table: &table[domain.User, userRow]{
			db:       db,
			order:    "email asc",
			key:      func(r *userRow) *string { return &r.ID },
			toDomain: (*userRow).toDomain,
			toRow:    newUserRow,
		},
	}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row userRow
	err := r.query(ctx).First(&row, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, mapError(err)
	}
	u := row.toDomain()
	return &u, nil
}
