package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
)

type purchaseRow struct {
	ID            string         `gorm:"primaryKey;type:varchar(36)"`
	UserID        string         `gorm:"type:varchar(36);not null;index"`
	MembershipID  string         `gorm:"type:varchar(36);not null"`
	Membership    *membershipRow `gorm:"foreignKey:MembershipID"`
	PurchaseDate  time.Time      `gorm:"not null"`
	StartDate     time.Time      `gorm:"not null"`
	EndDate       time.Time      `gorm:"not null;index"`
	AmountPaid    float64        `gorm:"type:numeric(12,2)"`
	PaymentMethod string
	Status        string `gorm:"type:varchar(16);index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (purchaseRow) TableName() string { return "membership_purchases" }

func (r *purchaseRow) toDomain() domain.MembershipPurchase {
	p := domain.MembershipPurchase{
		ID:            r.ID,
		UserID:        r.UserID,
		MembershipID:  r.MembershipID,
		PurchaseDate:  r.PurchaseDate,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		AmountPaid:    r.AmountPaid,
		PaymentMethod: r.PaymentMethod,
		Status:        domain.PurchaseStatus(r.Status),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.Membership != nil {
		m := r.Membership.toDomain()
		p.Membership = &m
	}
	return p
}

func newPurchaseRow(p *domain.MembershipPurchase) (purchaseRow, error) {
	status := p.Status
	if status == "" {
		status = domain.PurchaseActive
	}
	return purchaseRow{
		ID:            p.ID,
		UserID:        p.UserID,
		MembershipID:  p.MembershipID,
		PurchaseDate:  p.PurchaseDate,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		AmountPaid:    p.AmountPaid,
		PaymentMethod: p.PaymentMethod,
		Status:        string(status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

type purchaseRepository struct {
	*table[domain.MembershipPurchase, purchaseRow]
}

// NewPurchaseRepository returns the primary membership purchase store,
// newest purchase first, with the plan joined.
func NewPurchaseRepository(db *gorm.DB) repository.PurchaseStore {
	return &purchaseRepository{
		table: &table[domain.MembershipPurchase, purchaseRow]{
			db:       db,
			order:    "purchase_date desc",
			preloads: []string{"Membership"},
			key:      func(r *purchaseRow) *string { return &r.ID },
			toDomain: (*purchaseRow).toDomain,
			toRow:    newPurchaseRow,
		},
	}
}

func (r *purchaseRepository) ListByUser(ctx context.Context, userID string) ([]domain.MembershipPurchase, error) {
	var rows []purchaseRow
	err := r.query(ctx).
		Where("user_id = ?", userID).
		Order("purchase_date desc").
		Find(&rows).Error
	if err != nil {
		return nil, mapError(err)
	}
	return r.rows(rows), nil
}

func (r *purchaseRepository) CurrentForUser(ctx context.Context, userID string, now time.Time) (*domain.MembershipPurchase, error) {
	var row purchaseRow
	err := r.query(ctx).
		Where("user_id = ? AND end_date >= ?", userID, now).
		Order("end_date asc").
		First(&row).Error
	if err != nil {
		return nil, mapError(err)
	}
	p := row.toDomain()
	return &p, nil
}

func (r *purchaseRepository) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&purchaseRow{}).
		Where("status = ? AND end_date < ?", domain.PurchaseActive, now).
		Update("status", domain.PurchaseExpired)
	if res.Error != nil {
		return 0, mapError(res.Error)
	}
	return res.RowsAffected, nil
}
