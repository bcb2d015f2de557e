package repository

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CropTotal is one row of a per-crop SUM(amount) aggregate.
type CropTotal struct {
	CropID uuid.UUID
	Total  decimal.Decimal
}

// CropTotals folds aggregate rows into a map keyed by crop.
func CropTotals(rows []CropTotal) map[uuid.UUID]decimal.Decimal {
	totals := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.CropID] = totals[row.CropID].Add(row.Total)
	}
	return totals
}

// Amount converts a derived float amount to its stored form.
func Amount(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
