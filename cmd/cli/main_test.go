package main

import (
	"bytes"
	"testing"

	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrintReport(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printReport(&buf, &dto.YearlyReport{
		Year: 2024,
		Crops: []dto.CropReport{
			{CropName: "Wheat", CropEmoji: "🌾", Season: "Rabi", Area: 2, AreaUnit: "Acre", Income: 2000, Expense: 1000, Profit: 1000},
			{CropName: "Cotton", CropEmoji: "🌱", Season: "Kharif", Area: 1, AreaUnit: "Bigha", Expense: 800, Profit: -800},
		},
		Summary: dto.ReportSummary{TotalIncome: 2000, TotalExpense: 1800, NetProfit: 200, TotalCrops: 2, TotalArea: 3},
	})

	out := buf.String()
	assert.Contains(t, out, "Farm report 2024")
	assert.Contains(t, out, "Wheat")
	assert.Contains(t, out, "-800.00")
	assert.Contains(t, out, "Crops: 2  Area: 3.00")
	assert.Contains(t, out, "Net 200.00")
}

func TestProfit(t *testing.T) {
	color.NoColor = true
	assert.Equal(t, "12.50", profit(12.5))
	assert.Equal(t, "-3.00", profit(-3))
}
