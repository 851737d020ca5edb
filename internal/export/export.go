// Package export produces the tabular board dumps: a CSV of drafted games
// and a fuller spreadsheet with blank columns reserved for resale
// bookkeeping.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ticketdraft/ticket-draft-backend/internal/draft"
)

// CSV writes drafted games only, one row per claim.
func CSV(w io.Writer, games []draft.Game) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Player", "Date", "Time", "Day", "Opponent", "Tier", "Price"}); err != nil {
		return fmt.Errorf("export: csv header: %w", err)
	}
	for _, g := range games {
		if g.PickedBy == nil {
			continue
		}
		row := []string{
			*g.PickedBy,
			g.Date,
			g.Time,
			g.Day,
			g.Opponent,
			g.Tier,
			strconv.FormatFloat(g.Price, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

const sheet = "Draft"

var xlsxHeaders = []string{
	"Game",
	"Day",
	"Date",
	"Time",
	"Opponent",
	"Tier",
	"Price Each",
	"Drafted",
	"Starting Retail Value",
	"Selling",
	"Sold Price",
	"Fee Each",
	"Profit",
}

// Columns H..M stay blank for downstream manual bookkeeping.
var xlsxWidths = []float64{6, 4, 10, 9, 24, 10, 12, 14, 18, 10, 10, 10, 12}

// XLSX writes every game, drafted or not, with the claimant in the Drafted
// column and prices currency-formatted.
func XLSX(w io.Writer, games []draft.Game) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("export: new sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export: drop default sheet: %w", err)
	}

	for i, h := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("export: header %q: %w", h, err)
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, xlsxWidths[i]); err != nil {
			return fmt.Errorf("export: column width: %w", err)
		}
	}

	for i, g := range games {
		drafted := ""
		if g.PickedBy != nil {
			drafted = *g.PickedBy
		}
		row := []interface{}{i + 1, g.Day, g.Date, g.Time, g.Opponent, g.Tier, g.Price, drafted}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export: row %d: %w", i+1, err)
		}
	}

	if len(games) > 0 {
		numFmt := "$#,##0.00"
		style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
		if err != nil {
			return fmt.Errorf("export: price style: %w", err)
		}
		if err := f.SetCellStyle(sheet, "G2", fmt.Sprintf("G%d", len(games)+1), style); err != nil {
			return fmt.Errorf("export: apply price style: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}
