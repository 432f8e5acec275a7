// Package calc holds the pure calculators behind derived display values:
// class end times, BMI, membership end dates and currency conversion.
package calc

import "errors"

var (
	ErrInvalidClock        = errors.New("calc: time must be HH:MM")
	ErrInvalidMeasurement  = errors.New("calc: height and weight must be positive numbers")
	ErrUnsupportedUnits    = errors.New("calc: units must be metric or imperial")
	ErrUnsupportedCurrency = errors.New("calc: unsupported currency")
	ErrInvalidRate         = errors.New("calc: exchange rate must be a positive number")
)
