// Package calculator computes the derived monetary fields of expense and
// income sub-records. Every function is pure: the same raw inputs always
// produce the same result, so recomputing on each save never drifts.
package calculator

import (
	"github.com/shopspring/decimal"
)

// Places is the number of decimal places monetary values are rounded to.
const Places = 2

// Round2 rounds v half away from zero to two decimal places.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(Places).Float64()
	return f
}

// Product multiplies a by b and rounds the result to two decimal places.
// The multiplication itself is done in decimal arithmetic so that inputs
// like 0.1 * 3 round to 0.30 rather than 0.30000000000000004.
func Product(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).Round(Places).Float64()
	return f
}

// SeedRatePerKg returns totalCost / quantityKg rounded to two places.
// ok is false when quantityKg is not positive; the rate stays unset then.
func SeedRatePerKg(totalCost, quantityKg float64) (rate float64, ok bool) {
	if quantityKg <= 0 {
		return 0, false
	}
	q := decimal.NewFromFloat(totalCost).Div(decimal.NewFromFloat(quantityKg))
	rate, _ = q.Round(Places).Float64()
	return rate, true
}

// LabourDailyTotal returns numberOfPeople * days * dailyRate. Callers
// reject people or days below 1 before getting here.
func LabourDailyTotal(numberOfPeople, days int, dailyRate float64) float64 {
	return float64(numberOfPeople*days) * dailyRate
}

// MachineryTotal returns hoursOrAcres * rate rounded to two places.
func MachineryTotal(hoursOrAcres, rate float64) float64 {
	return Product(hoursOrAcres, rate)
}

// CropSaleTotal returns quantityKg * pricePerKg rounded to two places.
func CropSaleTotal(quantityKg, pricePerKg float64) float64 {
	return Product(quantityKg, pricePerKg)
}

// RentalTotal returns hoursOrDays * ratePerUnit rounded to two places.
func RentalTotal(hoursOrDays, ratePerUnit float64) float64 {
	return Product(hoursOrDays, ratePerUnit)
}
