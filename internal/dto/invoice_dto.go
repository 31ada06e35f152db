package dto

import "github.com/shopspring/decimal"

// GenerateInvoiceRequest is the aggregate input to invoice generation. The
// handler builds it from a multipart form: scalar fields come from form
// values, the optional booking spreadsheet from the "bookings" file part.
type GenerateInvoiceRequest struct {
	CustomerID     string          `form:"customer_id"     validate:"required,uuid"`
	InvoiceNumber  string          `form:"invoice_number"  validate:"required"`
	Currency       string          `form:"currency"        validate:"required,oneof=DKK EUR USD GBP"`
	DueDate        string          `form:"due_date"`
	Description    string          `form:"description"`
	ManualTotal    decimal.Decimal `form:"manual_total"`
	ManualBookings int             `form:"manual_bookings" validate:"min=0"`
	HeaderOffset   int             `form:"header_offset"   validate:"min=0"`

	// Upload — populated by the handler, never bound directly.
	UploadName string `validate:"-"`
	UploadData []byte `validate:"-"`
}

// InvoiceDocument is the rendered output: a PDF invoice plus, when booking
// rows were imported, a companion specification spreadsheet. Immutable once
// produced; identified only by the invoice number used in the filenames.
type InvoiceDocument struct {
	PDF                 []byte
	PDFFilename         string
	Spreadsheet         []byte // nil when no booking rows were imported
	SpreadsheetFilename string

	Total    decimal.Decimal
	Count    int
	Currency string
}
