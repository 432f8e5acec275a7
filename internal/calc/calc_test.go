package calc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndTime(t *testing.T) {
	tests := []struct {
		start    string
		duration int
		want     string
	}{
		{"23:30", 90, "01:00"},
		{"09:00", 60, "10:00"},
		{"7:05", 55, "08:00"},
		{"00:00", 24 * 60, "00:00"},
		{"22:15", 3*24*60 + 120, "00:15"},
		{"00:10", -20, "23:50"},
	}
	for _, tt := range tests {
		got, err := EndTime(tt.start, tt.duration)
		require.NoError(t, err, tt.start)
		assert.Equal(t, tt.want, got, "%s + %d", tt.start, tt.duration)
	}
}

func TestEndTime_NeverOutOfRange(t *testing.T) {
	for d := 0; d < 3000; d += 7 {
		got, err := EndTime("18:45", d)
		require.NoError(t, err)
		m, err := ParseClock(got)
		require.NoError(t, err)
		assert.Less(t, m, minutesPerDay)
	}
}

func TestEndTime_InvalidStart(t *testing.T) {
	for _, s := range []string{"", "24:00", "12", "ab:cd", "12:7", "12:60", "+7:05", "-0:30", "07:+5", "07:-1", "7 :05"} {
		_, err := EndTime(s, 30)
		assert.ErrorIs(t, err, ErrInvalidClock, s)
	}
}

func TestTimeRange(t *testing.T) {
	got, err := TimeRange("6:30", 45)
	require.NoError(t, err)
	assert.Equal(t, "06:30 - 07:15", got)
}

func TestBMICategory(t *testing.T) {
	assert.Equal(t, Underweight, BMICategory(17.9))
	assert.Equal(t, NormalWeight, BMICategory(22.0))
	assert.Equal(t, Overweight, BMICategory(27.5))
	assert.Equal(t, Obesity, BMICategory(31.0))

	assert.Equal(t, NormalWeight, BMICategory(18.5))
	assert.Equal(t, Overweight, BMICategory(25))
	assert.Equal(t, Obesity, BMICategory(30))
}

func TestMetricBMI_Monotonic(t *testing.T) {
	prev := 0.0
	for h := 150.0; h <= 200; h += 5 {
		bmi, err := MetricBMI(h, 70)
		require.NoError(t, err)
		if prev != 0 {
			assert.Less(t, bmi, prev, "height %v", h)
		}
		prev = bmi
	}

	prev = 0
	for w := 50.0; w <= 120; w += 5 {
		bmi, err := MetricBMI(175, w)
		require.NoError(t, err)
		assert.Greater(t, bmi, prev, "weight %v", w)
		prev = bmi
	}
}

func TestMetricBMI_RejectsNonPositive(t *testing.T) {
	_, err := MetricBMI(0, 70)
	assert.ErrorIs(t, err, ErrInvalidMeasurement)
	_, err = MetricBMI(175, -1)
	assert.ErrorIs(t, err, ErrInvalidMeasurement)
}

func TestComputeBMI(t *testing.T) {
	res, err := ComputeBMI(BMIInput{Units: Metric, HeightCm: "175", WeightKg: "70"})
	require.NoError(t, err)
	assert.Equal(t, 22.9, res.BMI)
	assert.Equal(t, NormalWeight, res.Category)

	// 5ft 9in, 160 lb
	res, err = ComputeBMI(BMIInput{Units: Imperial, HeightFt: "5", HeightIn: "9", WeightLbs: "160"})
	require.NoError(t, err)
	assert.Equal(t, 23.6, res.BMI)
	assert.Equal(t, NormalWeight, res.Category)

	// inches are optional
	res, err = ComputeBMI(BMIInput{Units: "Imperial", HeightFt: "6", WeightLbs: "250"})
	require.NoError(t, err)
	assert.Equal(t, Obesity, res.Category)
}

func TestComputeBMI_CategoryUsesUnroundedValue(t *testing.T) {
	// 24.96 rounds to 25.0 for display but is still normal weight
	res, err := ComputeBMI(BMIInput{Units: Metric, HeightCm: "100", WeightKg: "24.96"})
	require.NoError(t, err)
	assert.Equal(t, 25.0, res.BMI)
	assert.Equal(t, NormalWeight, res.Category)
}

func TestComputeBMI_Invalid(t *testing.T) {
	tests := []BMIInput{
		{Units: Metric, HeightCm: "", WeightKg: "70"},
		{Units: Metric, HeightCm: "175", WeightKg: "abc"},
		{Units: Metric, HeightCm: "-175", WeightKg: "70"},
		{Units: Imperial, HeightFt: "5", HeightIn: "x", WeightLbs: "150"},
		{Units: Imperial, HeightFt: "", WeightLbs: "150"},
	}
	for _, in := range tests {
		_, err := ComputeBMI(in)
		assert.ErrorIs(t, err, ErrInvalidMeasurement, "%+v", in)
	}

	_, err := ComputeBMI(BMIInput{Units: "stones"})
	assert.ErrorIs(t, err, ErrUnsupportedUnits)
}

func TestDurationInDays(t *testing.T) {
	tests := map[string]int{
		"1 Month":   30,
		"3 months":  90,
		"12 months": 360,
		"1 year":    365,
		"45 days":   45,
		"Monthly":   30,
		"":          30,
		"forever":   30,
		"2 weeks":   30,
		"0 months":  30,
		"0 years":   365,
		"0 days":    30,
		"days":      30,
		"year":      365,
	}
	for in, want := range tests {
		assert.Equal(t, want, DurationInDays(in), in)
	}
}

func TestMembershipEndDate(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, start.AddDate(0, 0, 90), MembershipEndDate(start, "3 months"))
	assert.Equal(t, start.AddDate(0, 0, 45), MembershipEndDate(start, "45 days"))
	assert.Equal(t, start.AddDate(0, 0, 30), MembershipEndDate(start, ""))
	assert.True(t, MembershipEndDate(start, "0 months").After(start))
}

func TestConverter(t *testing.T) {
	c, err := NewConverter(DefaultINRPerUSD)
	require.NoError(t, err)

	usd, err := c.FromINR(2499, USD)
	require.NoError(t, err)
	assert.Equal(t, 31.24, usd)

	inr, err := c.ToINR(49.99, USD)
	require.NoError(t, err)
	assert.Equal(t, 3999.0, inr)

	same, err := c.Convert(1999, INR, INR)
	require.NoError(t, err)
	assert.Equal(t, 1999.0, same)
}

func TestConverter_Symmetric(t *testing.T) {
	c, err := NewConverter(DefaultINRPerUSD)
	require.NoError(t, err)

	for _, inr := range []float64{0, 1, 99, 1999, 2499, 3499, 5999, 10999} {
		usd, err := c.Convert(inr, INR, USD)
		require.NoError(t, err)
		back, err := c.Convert(usd, USD, INR)
		require.NoError(t, err)
		assert.InDelta(t, inr, back, 1, "INR %v", inr)
	}
	for _, usd := range []float64{0.5, 29.99, 49.99, 129.99} {
		inr, err := c.Convert(usd, USD, INR)
		require.NoError(t, err)
		back, err := c.Convert(inr, INR, USD)
		require.NoError(t, err)
		assert.InDelta(t, usd, back, 0.01, "USD %v", usd)
	}
}

func TestConverter_Errors(t *testing.T) {
	_, err := NewConverter(0)
	assert.ErrorIs(t, err, ErrInvalidRate)

	c, err := NewConverter(80)
	require.NoError(t, err)
	_, err = c.Convert(10, "EUR", INR)
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)

	_, err = ParseCurrency("gbp")
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
	cur, err := ParseCurrency("usd")
	require.NoError(t, err)
	assert.Equal(t, USD, cur)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "₹2499", Format(2499.4, INR))
	assert.Equal(t, "$31.24", Format(31.2375, USD))
}
