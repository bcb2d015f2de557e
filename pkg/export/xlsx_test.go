package export

import (
	"bytes"
	"testing"

	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *dto.YearlyReport {
	return &dto.YearlyReport{
		Year: 2024,
		Crops: []dto.CropReport{
			{CropName: "Wheat", Season: "Rabi", Status: "Active", Area: 2, AreaUnit: "Bigha", Income: 2000, Expense: 1000, Profit: 1000},
			{CropName: "Rice", Season: "Kharif", Status: "Harvested", Area: 1.5, AreaUnit: "Acre", Income: 500, Expense: 800, Profit: -300},
		},
		SeasonBreakdown: map[string]dto.SeasonTotals{
			"Rabi":   {Income: 2000, Expense: 1000, Profit: 1000, Crops: 1, Area: 2},
			"Kharif": {Income: 500, Expense: 800, Profit: -300, Crops: 1, Area: 1.5},
		},
		Summary: dto.ReportSummary{TotalIncome: 2500, TotalExpense: 1800, NetProfit: 700, TotalCrops: 2, TotalArea: 3.5},
	}
}

func TestXLSX(t *testing.T) {
	t.Parallel()

	data, err := XLSX(sampleReport())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetCrops, SheetSeasons}, f.GetSheetList())

	rows, err := f.GetRows(SheetCrops)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Crop", rows[0][0])
	assert.Equal(t, "Wheat", rows[1][0])
	assert.Equal(t, "2000", rows[1][7])
	assert.Equal(t, "Total", rows[3][0])
	assert.Equal(t, "700", rows[3][9])

	rows, err = f.GetRows(SheetSeasons)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Kharif", rows[1][0], "seasons follow calendar order")
	assert.Equal(t, "Rabi", rows[2][0])
	assert.Equal(t, "2", rows[3][1])
}

func TestXLSX_EmptyReport(t *testing.T) {
	t.Parallel()

	data, err := XLSX(&dto.YearlyReport{Year: 2023, SeasonBreakdown: map[string]dto.SeasonTotals{}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetCrops)
	require.NoError(t, err)
	assert.Len(t, rows, 2, "header and totals only")
}

func TestFilename(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "farm-report-2024.xlsx", Filename(2024))
}
