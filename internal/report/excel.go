package report

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	registerSheet = "Saplings"
	summarySheet  = "Summary"
)

func writeXLSX(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2ECC71"}},
	})
	if err != nil {
		return err
	}

	header := make([]any, len(Columns))
	for i, col := range Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(registerSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(registerSheet, 1, 1, headerStyle); err != nil {
		return err
	}

	for i, row := range r.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		values := []any{
			row.SaplingID,
			row.Species,
			row.Guardian,
			row.Latitude,
			row.Longitude,
			row.PlantationDate.Format(dateLayout),
			row.Updates,
			string(row.Status),
			row.values()[8],
		}
		if err := f.SetSheetRow(registerSheet, cell, &values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(registerSheet, "A", "I", 18); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	for i, line := range r.summaryLines() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, cell, line); err != nil {
			return err
		}
	}

	return f.Write(w)
}
