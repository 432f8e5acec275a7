package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"alcyxob/fitness-center/internal/calc"
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
)

// PaymentMethodCard is recorded on every mock card payment.
const PaymentMethodCard = "Credit Card"

// DefaultPaymentCurrency is preselected on the payment page.
const DefaultPaymentCurrency = calc.USD

var ErrPurchaseFailed = errors.New("payment could not be recorded")

// PlanReader looks membership plans up by id.
type PlanReader interface {
	GetByID(ctx context.Context, id string) (*domain.MembershipPlan, error)
}

// PurchaseRepository is what the payment flow needs from the purchase store.
type PurchaseRepository interface {
	Create(ctx context.Context, p *domain.MembershipPurchase) error
	ListByUser(ctx context.Context, userID string) ([]domain.MembershipPurchase, error)
	CurrentForUser(ctx context.Context, userID string, now time.Time) (*domain.MembershipPurchase, error)
	ExpireBefore(ctx context.Context, now time.Time) (int64, error)
}

// Quote is a plan priced in the currency the buyer chose.
type Quote struct {
	PlanID       string        `json:"planId"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Duration     string        `json:"duration"`
	DurationDays int           `json:"durationDays"`
	Features     []string      `json:"features"`
	Currency     calc.Currency `json:"currency"`
	Price        float64       `json:"price"`
	PriceINR     float64       `json:"priceINR"`
	PriceUSD     float64       `json:"priceUSD"`
	Display      string        `json:"display"`
	// Fallback is set when the plan came from the built-in list.
	Fallback bool `json:"fallback"`
}

// PaymentForm is the mock checkout form. No card data is stored.
type PaymentForm struct {
	PlanID     string `json:"planId"`
	Currency   string `json:"currency"`
	Name       string `json:"name" validate:"required,max=120"`
	Email      string `json:"email" validate:"required,email"`
	CardNumber string `json:"cardNumber" validate:"required,credit_card"`
	ExpiryDate string `json:"expiryDate" validate:"required,len=5,cardexpiry"`
	CVV        string `json:"cvv" validate:"required,number,min=3,max=4"`
}

// PurchaseView is a purchase as the membership history shows it.
type PurchaseView struct {
	domain.MembershipPurchase
	PlanName        string `json:"planName"`
	EffectiveStatus string `json:"effectiveStatus"`
}

// MembershipHistory is the member's current membership and all purchases.
type MembershipHistory struct {
	Current *PurchaseView  `json:"current"`
	History []PurchaseView `json:"history"`
}

type PurchaseService interface {
	Quote(ctx context.Context, planID, currency string) (*Quote, error)
	Purchase(ctx context.Context, userID string, form PaymentForm) (*domain.MembershipPurchase, error)
	History(ctx context.Context, userID string) (*MembershipHistory, error)
	// ExpireMemberships marks elapsed purchases as expired in the primary store.
	ExpireMemberships(ctx context.Context) (int64, error)
}

type purchaseService struct {
	plans     PlanReader
	purchases PurchaseRepository
	converter *calc.Converter
	now       func() time.Time
}

func NewPurchaseService(plans PlanReader, purchases PurchaseRepository, converter *calc.Converter) PurchaseService {
	return &purchaseService{
		plans:     plans,
		purchases: purchases,
		converter: converter,
		now:       time.Now,
	}
}

// Quote prices a plan. A plan the store cannot provide, for any reason, is
// taken from the built-in list, so checkout always has something to sell.
func (s *purchaseService) Quote(ctx context.Context, planID, currency string) (*Quote, error) {
	cur, err := parsePaymentCurrency(currency)
	if err != nil {
		return nil, err
	}

	plan, fallback := s.plan(ctx, planID)
	price, err := s.converter.FromINR(plan.Price, cur)
	if err != nil {
		return nil, err
	}
	usd, err := s.converter.FromINR(plan.Price, calc.USD)
	if err != nil {
		return nil, err
	}
	return &Quote{
		PlanID:       plan.ID,
		Name:         plan.Name,
		Description:  plan.Description,
		Duration:     plan.Duration,
		DurationDays: calc.DurationInDays(plan.Duration),
		Features:     plan.Features,
		Currency:     cur,
		Price:        price,
		PriceINR:     calc.Round(plan.Price, calc.INR),
		PriceUSD:     usd,
		Display:      calc.Format(price, cur),
		Fallback:     fallback,
	}, nil
}

// Purchase validates the card form and records the purchase. Nothing is
// written when validation fails.
func (s *purchaseService) Purchase(ctx context.Context, userID string, form PaymentForm) (*domain.MembershipPurchase, error) {
	form.CardNumber = strings.ReplaceAll(strings.TrimSpace(form.CardNumber), " ", "")
	form.ExpiryDate = strings.TrimSpace(form.ExpiryDate)
	form.CVV = strings.TrimSpace(form.CVV)
	form.Email = strings.TrimSpace(form.Email)
	if err := validateForm(form); err != nil {
		return nil, err
	}

	quote, err := s.Quote(ctx, form.PlanID, form.Currency)
	if err != nil {
		return nil, err
	}
	paid, err := s.converter.ToINR(quote.Price, quote.Currency)
	if err != nil {
		return nil, err
	}

	start := s.now().UTC()
	purchase := &domain.MembershipPurchase{
		UserID:        userID,
		MembershipID:  quote.PlanID,
		PurchaseDate:  start,
		StartDate:     start,
		EndDate:       calc.MembershipEndDate(start, quote.Duration),
		AmountPaid:    paid,
		PaymentMethod: PaymentMethodCard,
		Status:        domain.PurchaseActive,
	}
	if err := s.purchases.Create(ctx, purchase); err != nil {
		log.Printf("ERROR: Recording purchase of %s for user %s: %v", quote.PlanID, userID, err)
		return nil, fmt.Errorf("%w: %w", ErrPurchaseFailed, err)
	}
	log.Printf("INFO: User %s purchased %s until %s", userID, quote.PlanID, purchase.EndDate.Format(time.DateOnly))
	return purchase, nil
}

// History loads the purchase list and the current membership concurrently.
func (s *purchaseService) History(ctx context.Context, userID string) (*MembershipHistory, error) {
	now := s.now()
	var (
		purchases []domain.MembershipPurchase
		current   *domain.MembershipPurchase
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		purchases, err = s.purchases.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		p, err := s.purchases.CurrentForUser(gctx, userID, now)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		current = p
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &MembershipHistory{History: make([]PurchaseView, len(purchases))}
	for i, p := range purchases {
		out.History[i] = purchaseView(p, now)
	}
	if current != nil {
		v := purchaseView(*current, now)
		out.Current = &v
	}
	return out, nil
}

func (s *purchaseService) ExpireMemberships(ctx context.Context) (int64, error) {
	return s.purchases.ExpireBefore(ctx, s.now().UTC())
}

// plan reports whether the built-in list had to be used.
func (s *purchaseService) plan(ctx context.Context, id string) (domain.MembershipPlan, bool) {
	if id = strings.TrimSpace(id); id != "" {
		p, err := s.plans.GetByID(ctx, id)
		if err == nil {
			return *p, false
		}
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("WARN: Plan %q unavailable, using built-in plan: %v", id, err)
		}
	}
	return fallbackPlan(id), true
}

func parsePaymentCurrency(s string) (calc.Currency, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultPaymentCurrency, nil
	}
	return calc.ParseCurrency(s)
}

func purchaseView(p domain.MembershipPurchase, now time.Time) PurchaseView {
	v := PurchaseView{MembershipPurchase: p, EffectiveStatus: p.EffectiveStatus(now)}
	switch {
	case p.Membership != nil && p.Membership.Name != "":
		v.PlanName = p.Membership.Name
	default:
		if plan, ok := findFallbackPlan(p.MembershipID); ok {
			v.PlanName = plan.Name
		} else {
			v.PlanName = "Membership"
		}
	}
	return v
}
