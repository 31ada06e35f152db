package service

// booking_import.go — turns an uploaded tabular file (CSV or XLSX) into
// normalized BookingRow values ready for pricing and export. The import is
// re-run from the source bytes on every generation request; nothing here is
// cached or persisted.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"path/filepath"
	"strings"

	"github.com/Amaan2660/InvoiceCreatorEL/internal/apierror"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Expected column headers (matched case-insensitively after trimming). The
// amount column is the only required one; it may be labelled either
// "Base Rate" or "Amount" depending on which upstream spreadsheet produced
// the file.
const (
	colDate        = "date"
	colPassenger   = "passenger"
	colFrom        = "from"
	colTo          = "to"
	colCustomerRef = "customer reference"
	colBaseRate    = "base rate"
	colAmount      = "amount"
)

// totalRowTolerance is the absolute difference under which a trailing row is
// treated as a pre-existing "total" row inserted by the source spreadsheet.
// Upstream spreadsheets round differently, so this is a deliberate fuzzy rule
// rather than exact equality.
var totalRowTolerance = decimal.NewFromInt(1)

type BookingImporter struct{}

func NewBookingImporter() *BookingImporter { return &BookingImporter{} }

// Import decodes the uploaded file and returns the cleaned booking rows.
// headerOffset is the number of rows above the header row (0 when the header
// is the first row).
func (i *BookingImporter) Import(filename string, data []byte, headerOffset int) ([]model.BookingRow, error) {
	raw, err := decodeTable(filename, data)
	if err != nil {
		return nil, err
	}
	return i.normalize(raw, headerOffset)
}

// decodeTable reads the raw bytes into a row/column grid. CSV and XLSX are
// the supported upload formats; anything else is a schema failure.
func decodeTable(filename string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		r := csv.NewReader(bytes.NewReader(data))
		r.FieldsPerRecord = -1 // ragged rows are tolerated; cells are looked up by header index
		rows, err := r.ReadAll()
		if err != nil {
			return nil, &apierror.SchemaError{Detail: "malformed CSV: " + err.Error()}
		}
		return rows, nil
	case ".xlsx":
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, &apierror.SchemaError{Detail: "malformed XLSX: " + err.Error()}
		}
		defer f.Close()
		rows, err := f.GetRows(f.GetSheetName(0))
		if err != nil {
			return nil, &apierror.SchemaError{Detail: "read XLSX sheet: " + err.Error()}
		}
		return rows, nil
	default:
		return nil, &apierror.SchemaError{Detail: "unsupported upload format " + filepath.Ext(filename) + " (expected .csv or .xlsx)"}
	}
}

func (i *BookingImporter) normalize(raw [][]string, headerOffset int) ([]model.BookingRow, error) {
	if headerOffset >= len(raw) {
		return nil, &apierror.SchemaError{Detail: "header row offset beyond end of file"}
	}

	// Resolve column positions from the header row.
	cols := make(map[string]int)
	for idx, h := range raw[headerOffset] {
		cols[strings.ToLower(strings.TrimSpace(h))] = idx
	}
	amountIdx, ok := cols[colBaseRate]
	if !ok {
		amountIdx, ok = cols[colAmount]
	}
	if !ok {
		return nil, &apierror.SchemaError{Detail: `missing required column "Base Rate"`}
	}

	cell := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var rows []model.BookingRow
	for k, row := range raw[headerOffset+1:] {
		rawAmount := ""
		if amountIdx < len(row) {
			rawAmount = strings.TrimSpace(row[amountIdx])
		}
		// Rows with an empty amount cell carry no billable value — drop them.
		if rawAmount == "" {
			continue
		}
		rate, err := parseAmount(rawAmount)
		if err != nil {
			// 1-based spreadsheet row number, counting from the top of the file.
			return nil, &apierror.ParseError{Row: headerOffset + k + 2, Cell: rawAmount}
		}
		rows = append(rows, model.BookingRow{
			Date:        cell(row, colDate),
			Passenger:   cell(row, colPassenger),
			From:        cell(row, colFrom),
			To:          cell(row, colTo),
			CustomerRef: cell(row, colCustomerRef),
			BaseRate:    rate,
		})
	}

	return dropTrailingTotalRow(rows), nil
}

// parseAmount strips thousand-separator characters and parses the residue as
// a non-negative decimal.
func parseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', '\'', ' ', ' ':
			return -1
		}
		return r
	}, s)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("negative amount")
	}
	return d, nil
}

// dropTrailingTotalRow removes the last row when its amount is within
// totalRowTolerance of the sum of all preceding amounts — the signature of a
// source spreadsheet that already appended its own total row.
func dropTrailingTotalRow(rows []model.BookingRow) []model.BookingRow {
	if len(rows) < 2 {
		return rows
	}
	last := rows[len(rows)-1]
	sum := decimal.Zero
	for _, r := range rows[:len(rows)-1] {
		sum = sum.Add(r.BaseRate)
	}
	if last.BaseRate.Sub(sum).Abs().LessThanOrEqual(totalRowTolerance) {
		return rows[:len(rows)-1]
	}
	return rows
}
