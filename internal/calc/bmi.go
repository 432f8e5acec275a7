package calc

import (
	"math"
	"strconv"
	"strings"
)

// Units selects the measurement system of a BMI request.
type Units string

const (
	Metric   Units = "metric"
	Imperial Units = "imperial"
)

// BMI categories.
const (
	Underweight  = "Underweight"
	NormalWeight = "Normal weight"
	Overweight   = "Overweight"
	Obesity      = "Obesity"
)

const imperialFactor = 703

// BMIInput is a BMI request as typed into the calculator form. Only the
// fields of the selected unit system are read.
type BMIInput struct {
	Units     Units  `json:"units"`
	HeightCm  string `json:"heightCm"`
	WeightKg  string `json:"weightKg"`
	HeightFt  string `json:"heightFt"`
	HeightIn  string `json:"heightIn"`
	WeightLbs string `json:"weightLbs"`
}

// BMIResult holds the rounded index and its category. The category is
// decided on the unrounded value.
type BMIResult struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
}

// MetricBMI is weight / height², height in metres.
func MetricBMI(heightCm, weightKg float64) (float64, error) {
	if !positive(heightCm) || !positive(weightKg) {
		return 0, ErrInvalidMeasurement
	}
	m := heightCm / 100
	return weightKg / (m * m), nil
}

// ImperialBMI is 703 × weight / height², height in inches.
func ImperialBMI(heightIn, weightLb float64) (float64, error) {
	if !positive(heightIn) || !positive(weightLb) {
		return 0, ErrInvalidMeasurement
	}
	return imperialFactor * weightLb / (heightIn * heightIn), nil
}

// BMICategory classifies a BMI. Boundaries 18.5, 25 and 30 belong to the
// higher category.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return NormalWeight
	case bmi < 30:
		return Overweight
	default:
		return Obesity
	}
}

// RoundBMI rounds to one decimal place for display.
func RoundBMI(bmi float64) float64 {
	return math.Round(bmi*10) / 10
}

// ComputeBMI validates form input and computes the result.
func ComputeBMI(in BMIInput) (BMIResult, error) {
	var (
		bmi float64
		err error
	)
	switch Units(strings.ToLower(strings.TrimSpace(string(in.Units)))) {
	case Metric, "":
		h, herr := parsePositive(in.HeightCm)
		w, werr := parsePositive(in.WeightKg)
		if herr != nil || werr != nil {
			return BMIResult{}, ErrInvalidMeasurement
		}
		bmi, err = MetricBMI(h, w)
	case Imperial:
		ft, ferr := parsePositive(in.HeightFt)
		w, werr := parsePositive(in.WeightLbs)
		if ferr != nil || werr != nil {
			return BMIResult{}, ErrInvalidMeasurement
		}
		inches := 0.0
		if strings.TrimSpace(in.HeightIn) != "" {
			v, perr := strconv.ParseFloat(strings.TrimSpace(in.HeightIn), 64)
			if perr != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
				return BMIResult{}, ErrInvalidMeasurement
			}
			inches = v
		}
		bmi, err = ImperialBMI(ft*12+inches, w)
	default:
		return BMIResult{}, ErrUnsupportedUnits
	}
	if err != nil {
		return BMIResult{}, err
	}
	return BMIResult{BMI: RoundBMI(bmi), Category: BMICategory(bmi)}, nil
}

func parsePositive(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if !positive(v) {
		return 0, ErrInvalidMeasurement
	}
	return v, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
