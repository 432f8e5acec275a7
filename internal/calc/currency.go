package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Currency is an ISO code the site prices in.
type Currency string

const (
	INR Currency = "INR" // baseline; stored prices are INR
	USD Currency = "USD"
)

// DefaultINRPerUSD is the fixed rate used when none is configured.
const DefaultINRPerUSD = 80.0

// ParseCurrency accepts a code in any case. Empty means INR.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(s))) {
	case INR, "":
		return INR, nil
	case USD:
		return USD, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, s)
}

// Decimals is the minimal display unit of a currency.
func (c Currency) Decimals() int {
	if c == INR {
		return 0
	}
	return 2
}

// Symbol used on price tags.
func (c Currency) Symbol() string {
	if c == INR {
		return "₹"
	}
	return "$"
}

// Round rounds an amount to the currency's minimal display unit.
func Round(amount float64, c Currency) float64 {
	p := math.Pow10(c.Decimals())
	return math.Round(amount*p) / p
}

// Format renders an amount with symbol, e.g. "₹2499" or "$29.99".
func Format(amount float64, c Currency) string {
	return c.Symbol() + strconv.FormatFloat(Round(amount, c), 'f', c.Decimals(), 64)
}

// Converter converts between INR and USD at a fixed rate.
type Converter struct {
	inrPerUSD float64
}

// NewConverter returns a converter for the given INR-per-USD rate.
func NewConverter(inrPerUSD float64) (*Converter, error) {
	if !positive(inrPerUSD) {
		return nil, ErrInvalidRate
	}
	return &Converter{inrPerUSD: inrPerUSD}, nil
}

// Rate returns INR per USD.
func (c *Converter) Rate() float64 { return c.inrPerUSD }

// Convert converts amount and rounds it to the target currency.
func (c *Converter) Convert(amount float64, from, to Currency) (float64, error) {
	var inr float64
	switch from {
	case INR:
		inr = amount
	case USD:
		inr = amount * c.inrPerUSD
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, from)
	}
	switch to {
	case INR:
		return Round(inr, INR), nil
	case USD:
		return Round(inr/c.inrPerUSD, USD), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, to)
	}
}

// FromINR converts a baseline price; target must be a supported currency.
func (c *Converter) FromINR(inr float64, to Currency) (float64, error) {
	return c.Convert(inr, INR, to)
}

// ToINR converts an amount into the baseline currency.
func (c *Converter) ToINR(amount float64, from Currency) (float64, error) {
	return c.Convert(amount, from, INR)
}
