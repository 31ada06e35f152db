package infra

// xlsx.go — companion "specification" spreadsheet via excelize.
// One sheet: bolded header row, the normalized booking rows verbatim, and a
// trailing total row. The total value is the pricing engine's home-currency
// total passed in by the caller — it is deliberately NOT recomputed here, so
// the printed document and the spreadsheet share a single source of truth.

import (
	"unicode/utf8"

	"github.com/Amaan2660/InvoiceCreatorEL/internal/apierror"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const specSheet = "Specification"

var specHeaders = []string{"Date", "Passenger", "From", "To", "Customer Reference", "Base Rate"}

// RenderSpecification builds the itemized booking export. Callers should only
// invoke it when booking rows exist; the primary invoice never itemizes.
func (r *InvoiceRenderer) RenderSpecification(rows []model.BookingRow, homeTotal decimal.Decimal) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", specSheet); err != nil {
		return nil, &apierror.RenderError{Stage: "xlsx", Err: err}
	}

	// Rendered cell text per row; numeric cells keep their real values in the
	// sheet but their rendered width drives the column autosize below.
	grid := [][]string{specHeaders}
	for _, row := range rows {
		grid = append(grid, []string{
			row.Date, row.Passenger, row.From, row.To, row.CustomerRef, row.BaseRate.StringFixed(2),
		})
	}
	grid = append(grid, []string{"", "", "", "", "Total", homeTotal.StringFixed(2)})

	if err := r.writeSpecGrid(f, rows, homeTotal); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, &apierror.RenderError{Stage: "xlsx", Err: err}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(specHeaders))
	if err := f.SetCellStyle(specSheet, "A1", lastCol+"1", bold); err != nil {
		return nil, &apierror.RenderError{Stage: "xlsx", Err: err}
	}
	totalRow := len(grid)
	startTotal, _ := excelize.CoordinatesToCellName(1, totalRow)
	endTotal, _ := excelize.CoordinatesToCellName(len(specHeaders), totalRow)
	if err := f.SetCellStyle(specSheet, startTotal, endTotal, bold); err != nil {
		return nil, &apierror.RenderError{Stage: "xlsx", Err: err}
	}

	// Autosize each column to its longest rendered cell text.
	for col := range specHeaders {
		width := 0
		for _, row := range grid {
			if n := utf8.RuneCountInString(row[col]); n > width {
				width = n
			}
		}
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(specSheet, name, name, float64(width)+2); err != nil {
			return nil, &apierror.RenderError{Stage: "xlsx", Err: err}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, &apierror.RenderError{Stage: "xlsx", Err: err}
	}
	return buf.Bytes(), nil
}

// writeSpecGrid writes header, data, and total rows. Base rates and the total
// are written as numbers so the sheet stays usable for further spreadsheet
// arithmetic.
func (r *InvoiceRenderer) writeSpecGrid(f *excelize.File, rows []model.BookingRow, homeTotal decimal.Decimal) error {
	set := func(col, row int, v interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return &apierror.RenderError{Stage: "xlsx", Err: err}
		}
		if err := f.SetCellValue(specSheet, cell, v); err != nil {
			return &apierror.RenderError{Stage: "xlsx", Err: err}
		}
		return nil
	}

	for i, h := range specHeaders {
		if err := set(i+1, 1, h); err != nil {
			return err
		}
	}
	for i, row := range rows {
		values := []interface{}{row.Date, row.Passenger, row.From, row.To, row.CustomerRef, row.BaseRate.InexactFloat64()}
		for col, v := range values {
			if err := set(col+1, i+2, v); err != nil {
				return err
			}
		}
	}
	totalRow := len(rows) + 2
	if err := set(len(specHeaders)-1, totalRow, "Total"); err != nil {
		return err
	}
	return set(len(specHeaders), totalRow, homeTotal.InexactFloat64())
}
