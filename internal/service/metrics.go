package service

import (
	"fmt"
	"math"
	"strings"
)

var activityFactors = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// Metric is a derived figure that may be unavailable.
type Metric struct {
	Value float64
	OK    bool
}

func available(v float64) Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return Metric{}
	}
	return Metric{Value: v, OK: true}
}

// Format renders the value or the given placeholder ("N/A" on the dashboard,
// "-" in tables).
func (m Metric) Format(decimals int, placeholder string) string {
	if !m.OK {
		return placeholder
	}
	return fmt.Sprintf("%.*f", decimals, m.Value)
}

func BMI(weightKg, heightCm float64) Metric {
	if weightKg <= 0 || heightCm <= 0 {
		return Metric{}
	}
	m := heightCm / 100
	return available(weightKg / (m * m))
}

// BMR uses the Mifflin-St Jeor equation.
func BMR(weightKg, heightCm float64, age int, gender string) Metric {
	if weightKg <= 0 || heightCm <= 0 || age <= 0 {
		return Metric{}
	}
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male", "m":
		return available(base + 5)
	case "female", "f":
		return available(base - 161)
	default:
		return Metric{}
	}
}

func ActivityFactor(level string) (float64, bool) {
	f, ok := activityFactors[strings.ToLower(strings.TrimSpace(level))]
	return f, ok
}

func TDEE(bmr Metric, activityLevel string) Metric {
	factor, ok := ActivityFactor(activityLevel)
	if !bmr.OK || !ok {
		return Metric{}
	}
	return available(bmr.Value * factor)
}

func BMICategory(bmi Metric) string {
	switch {
	case !bmi.OK:
		return ""
	case bmi.Value < 18.5:
		return "underweight"
	case bmi.Value < 25:
		return "normal"
	case bmi.Value < 30:
		return "overweight"
	default:
		return "obese"
	}
}
