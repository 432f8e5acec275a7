package domain

import "time"

// MembershipPlan is a purchasable membership tier. Price is in INR, the
// site's baseline currency.
type MembershipPlan struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Duration    string    `json:"duration"` // free form, e.g. "1 Month", "3 months", "45 days"
	Features    []string  `json:"features"`
	IsPopular   bool      `json:"is_popular"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PurchaseStatus is the lifecycle state stored on a purchase.
type PurchaseStatus string

const (
	PurchaseActive  PurchaseStatus = "active"
	PurchaseExpired PurchaseStatus = "expired"
)

// StatusExpiredLabel is how an elapsed purchase is displayed.
const StatusExpiredLabel = "Expired"

// MembershipPurchase records a user buying a membership plan.
type MembershipPurchase struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	MembershipID  string         `json:"membership_id"`
	PurchaseDate  time.Time      `json:"purchase_date"`
	StartDate     time.Time      `json:"start_date"`
	EndDate       time.Time      `json:"end_date"`
	AmountPaid    float64        `json:"amount_paid"` // INR
	PaymentMethod string         `json:"payment_method"`
	Status        PurchaseStatus `json:"status"`

	// Membership is populated when the source joins the plan.
	Membership *MembershipPlan `json:"membership,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EffectiveStatus returns "Expired" once the end date has passed, otherwise
// the stored status.
func (p *MembershipPurchase) EffectiveStatus(now time.Time) string {
	if p.EndDate.Before(now) {
		return StatusExpiredLabel
	}
	return string(p.Status)
}

// IsCurrent reports whether the purchase still covers now.
func (p *MembershipPurchase) IsCurrent(now time.Time) bool {
	return !p.EndDate.Before(now)
}
