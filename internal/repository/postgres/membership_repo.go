package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/normalize"
	"alcyxob/fitness-center/internal/repository"
)

type membershipRow struct {
	ID          string  `gorm:"primaryKey;type:varchar(36)"`
	Name        string  `gorm:"not null"`
	Description string  `gorm:"type:text"`
	Price       float64 `gorm:"type:numeric(12,2);not null;index"`
	Duration    string
	Features    datatypes.JSON `gorm:"type:jsonb"`
	IsPopular   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (membershipRow) TableName() string { return "memberships" }

func (r *membershipRow) toDomain() domain.MembershipPlan {
	return normalize.MembershipPlan(normalize.RawMembershipPlan{
		Plan: domain.MembershipPlan{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Price:       r.Price,
			Duration:    r.Duration,
			IsPopular:   r.IsPopular,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		},
		Features: domain.RawList(string(r.Features)),
	})
}

func newMembershipRow(p *domain.MembershipPlan) (membershipRow, error) {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	encoded, err := json.Marshal(features)
	if err != nil {
		return membershipRow{}, fmt.Errorf("encode features: %w", err)
	}
	return membershipRow{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Duration:    p.Duration,
		Features:    datatypes.JSON(encoded),
		IsPopular:   p.IsPopular,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

// NewMembershipRepository returns the primary membership plan store,
// ordered by price.
func NewMembershipRepository(db *gorm.DB) repository.MembershipStore {
	return &table[domain.MembershipPlan, membershipRow]{
		db:       db,
		order:    "price asc",
		key:      func(r *membershipRow) *string { return &r.ID },
		toDomain: (*membershipRow).toDomain,
		toRow:    newMembershipRow,
	}
}
