package dto

import "github.com/google/uuid"

// CropReport is one crop's line in the yearly report.
type CropReport struct {
	ID         uuid.UUID `json:"id"`
	CropName   string    `json:"cropName"`
	CropType   string    `json:"cropType"`
	BatchLabel string    `json:"batchLabel"`
	CropEmoji  string    `json:"cropEmoji"`
	Season     string    `json:"season"`
	Status     string    `json:"status"`
	Area       float64   `json:"area"`
	AreaUnit   string    `json:"areaUnit"`
	Income     float64   `json:"income"`
	Expense    float64   `json:"expense"`
	Profit     float64   `json:"profit"`
}

// SeasonTotals aggregates the crops of one season.
type SeasonTotals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Profit  float64 `json:"profit"`
	Crops   int     `json:"crops"`
	Area    float64 `json:"area"`
}

// ReportSummary aggregates every crop of the year. Area is summed across
// units without conversion.
type ReportSummary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	NetProfit    float64 `json:"netProfit"`
	TotalCrops   int     `json:"totalCrops"`
	TotalArea    float64 `json:"totalArea"`
}

// YearlyReport is the consolidated report for one user and year.
type YearlyReport struct {
	Year            int                     `json:"year"`
	Crops           []CropReport            `json:"crops"`
	SeasonBreakdown map[string]SeasonTotals `json:"seasonBreakdown"`
	Summary         ReportSummary           `json:"summary"`
}
