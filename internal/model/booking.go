package model

import "github.com/shopspring/decimal"

// BookingRow is one trip/transfer record contributing to an invoice total.
// Rows exist only for the duration of a generation request — they are parsed
// from the uploaded spreadsheet, summed, exported to the specification
// spreadsheet, and never persisted.
type BookingRow struct {
	Date        string
	Passenger   string
	From        string
	To          string
	CustomerRef string
	BaseRate    decimal.Decimal
}
