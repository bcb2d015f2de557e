// Package export renders yearly reports as spreadsheets.
package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/amirasaad/farmledger/pkg/domain/crop"
	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/xuri/excelize/v2"
)

const (
	SheetCrops   = "Crops"
	SheetSeasons = "Seasons"

	// ContentType is the media type of the XLSX output.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	cropHeader = []any{
		"Crop", "Type", "Batch", "Season", "Status", "Area", "Unit",
		"Income", "Expense", "Profit",
	}
	seasonHeader = []any{"Season", "Crops", "Area", "Income", "Expense", "Profit"}
)

// Filename is the attachment name of a report export.
func Filename(year int) string {
	return fmt.Sprintf("farm-report-%d.xlsx", year)
}

// WriteXLSX writes the report as a workbook with a Crops and a Seasons
// sheet. Each sheet ends with a totals row.
func WriteXLSX(w io.Writer, report *dto.YearlyReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetCrops); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetSeasons); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	rows := [][]any{cropHeader}
	for _, c := range report.Crops {
		rows = append(rows, []any{
			c.CropName, c.CropType, c.BatchLabel, c.Season, c.Status,
			c.Area, c.AreaUnit, c.Income, c.Expense, c.Profit,
		})
	}
	s := report.Summary
	rows = append(rows, []any{
		"Total", "", "", "", "", s.TotalArea, "",
		s.TotalIncome, s.TotalExpense, s.NetProfit,
	})
	if err := writeRows(f, SheetCrops, rows, bold); err != nil {
		return err
	}

	rows = [][]any{seasonHeader}
	for _, season := range crop.Seasons {
		t, ok := report.SeasonBreakdown[string(season)]
		if !ok {
			continue
		}
		rows = append(rows, []any{string(season), t.Crops, t.Area, t.Income, t.Expense, t.Profit})
	}
	rows = append(rows, []any{"Total", s.TotalCrops, s.TotalArea, s.TotalIncome, s.TotalExpense, s.NetProfit})
	if err := writeRows(f, SheetSeasons, rows, bold); err != nil {
		return err
	}

	return f.Write(w)
}

// XLSX returns the workbook bytes.
func XLSX(report *dto.YearlyReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeRows writes rows from A1 down and bolds the header and the last row.
func writeRows(f *excelize.File, sheet string, rows [][]any, style int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	width := len(rows[0])
	for _, r := range []int{1, len(rows)} {
		from, _ := excelize.CoordinatesToCellName(1, r)
		to, _ := excelize.CoordinatesToCellName(width, r)
		if err := f.SetCellStyle(sheet, from, to, style); err != nil {
			return err
		}
	}
	return nil
}
