package infra

// pdf.go — invoice PDF generation using go-pdf/fpdf.
// Renders an A4 invoice with:
//   - Fixed company letterhead (optional logo image top-right)
//   - Invoice number, issue date, due date
//   - Bill To block (contact and VAT lines are conditional)
//   - A single aggregated line item (description, booking count, total)
//   - Subtotal and Amount Due — always equal, there is no tax or discount model
//   - Conversion-rate note when the invoice currency is not the home currency
//   - Bank details footer
//
// Itemized bookings are never printed here; they go to the companion
// specification spreadsheet (see xlsx.go).

import (
	"bytes"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Amaan2660/InvoiceCreatorEL/internal/apierror"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Letterhead is the fixed sender block printed on every invoice. It is wired
// in at construction; it is not user-configurable at request time.
type Letterhead struct {
	Name         string
	AddressLines []string
	CVR          string
	BankName     string
	BankReg      string
	BankAccount  string
	IBAN         string
	SwiftBIC     string
}

// DefaultLetterhead returns the company block used in production.
func DefaultLetterhead() Letterhead {
	return Letterhead{
		Name:         "Executive Limousine ApS",
		AddressLines: []string{"Vesterbrogade 42, 2.", "1620 København V", "Denmark"},
		CVR:          "CVR: DK38674921",
		BankName:     "Danske Bank",
		BankReg:      "Reg. 3409",
		BankAccount:  "Account 11872654",
		IBAN:         "IBAN: DK5030000011872654",
		SwiftBIC:     "SWIFT/BIC: DABADKKK",
	}
}

// InvoiceData is everything the renderer needs for one document. Total and
// Count come from the pricing engine; the renderer never recomputes them.
type InvoiceData struct {
	Customer      model.Customer
	InvoiceNumber string
	Currency      string
	DueDate       string
	Description   string
	Total         decimal.Decimal
	Count         int
	Rate          *decimal.Decimal // conversion rate applied, nil when none
	HomeCurrency  string
}

// InvoiceRenderer builds invoice PDFs and specification spreadsheets.
type InvoiceRenderer struct {
	letterhead Letterhead
	logoPath   string // optional; a missing file is skipped, never fatal
}

func NewInvoiceRenderer(letterhead Letterhead, logoPath string) *InvoiceRenderer {
	return &InvoiceRenderer{letterhead: letterhead, logoPath: logoPath}
}

// RenderPDF produces the printable invoice. Any construction failure aborts
// with a RenderError and no bytes are returned.
func (r *InvoiceRenderer) RenderPDF(data InvoiceData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30 // total margins = 30mm

	// ── Logo (decorative, optional) ──────────────────────────────────────────
	if r.logoPath != "" {
		if _, err := os.Stat(r.logoPath); err == nil {
			pdf.ImageOptions(r.logoPath, pageW-50, 12, 35, 0, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
		} else {
			log.Debug().Str("path", r.logoPath).Msg("letterhead logo missing, rendering without it")
		}
	}

	// ── Letterhead ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 7, r.letterhead.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range r.letterhead.AddressLines {
		pdf.CellFormat(contentW, 4.5, line, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 4.5, r.letterhead.CVR, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// ── Title and invoice metadata ───────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 9, "INVOICE", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, "Invoice #: "+data.InvoiceNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, "Date: "+time.Now().Format("2006-01-02"), "", 1, "L", false, 0, "")
	if data.DueDate != "" {
		pdf.CellFormat(contentW, 6, "Due date: "+data.DueDate, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	if data.Description != "" {
		pdf.MultiCell(contentW, 5.5, data.Description, "", "L", false)
		pdf.Ln(3)
	}

	// ── Bill To ──────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, "Bill To:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range billToLines(data.Customer) {
		pdf.CellFormat(contentW, 5.5, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// ── Line item table ──────────────────────────────────────────────────────
	// A single aggregated line: all bookings collapse into one priced row.
	descW := contentW * 0.60
	qtyW := contentW * 0.15
	amtW := contentW * 0.25

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(descW, 7, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(qtyW, 7, "Bookings", "1", 0, "C", false, 0, "")
	pdf.CellFormat(amtW, 7, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(descW, 7, lineItemDescription(data.Description), "1", 0, "L", false, 0, "")
	pdf.CellFormat(qtyW, 7, formatCount(data.Count), "1", 0, "C", false, 0, "")
	pdf.CellFormat(amtW, 7, FormatMoney(data.Total)+" "+data.Currency, "1", 1, "R", false, 0, "")

	// ── Totals ───────────────────────────────────────────────────────────────
	// Subtotal and Amount Due are equal by construction: there is no tax or
	// discount model.
	pdf.CellFormat(descW+qtyW, 7, "Subtotal", "1", 0, "L", false, 0, "")
	pdf.CellFormat(amtW, 7, FormatMoney(data.Total)+" "+data.Currency, "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(descW+qtyW, 7, "Amount due", "1", 0, "L", false, 0, "")
	pdf.CellFormat(amtW, 7, FormatMoney(data.Total)+" "+data.Currency, "1", 1, "R", false, 0, "")

	if note := CurrencyNote(data.Currency, data.HomeCurrency, data.Rate); note != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.Ln(2)
		pdf.CellFormat(contentW, 5, "Currency: "+note, "", 1, "L", false, 0, "")
	}

	// ── Payment details footer ───────────────────────────────────────────────
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 5.5, "Payment details", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range []string{
		r.letterhead.BankName + ", " + r.letterhead.BankReg + ", " + r.letterhead.BankAccount,
		r.letterhead.IBAN,
		r.letterhead.SwiftBIC,
	} {
		pdf.CellFormat(contentW, 4.5, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &apierror.RenderError{Stage: "pdf", Err: err}
	}
	return buf.Bytes(), nil
}

// ── Composition helpers ────────────────────────────────────────────────────────

// billToLines composes the recipient block. The contact line is emitted only
// when a contact person is present; the VAT line only when the customer is a
// company with a non-empty VAT number; the email line always.
func billToLines(c model.Customer) []string {
	lines := []string{c.Name}
	for _, l := range strings.Split(c.Address, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if c.Contact != nil && *c.Contact != "" {
		lines = append(lines, "Contact: "+*c.Contact)
	}
	if c.IsCompany && c.VAT != nil && *c.VAT != "" {
		lines = append(lines, "VAT No: "+*c.VAT)
	}
	lines = append(lines, "Email: "+c.Email)
	return lines
}

// lineItemDescription falls back to a generic label when the caller supplied
// no description text.
func lineItemDescription(desc string) string {
	if desc == "" {
		return "Passenger transfer services"
	}
	return desc
}

// CurrencyNote explains the fixed conversion rate used, e.g.
// "EUR (1 EUR = 7.5 DKK)". Empty when no conversion occurred.
func CurrencyNote(currency, home string, rate *decimal.Decimal) string {
	if rate == nil || currency == home {
		return ""
	}
	return currency + " (1 " + currency + " = " + rate.String() + " " + home + ")"
}

// FormatMoney renders a decimal with two places and thousand separators,
// e.g. 4000 → "4,000.00".
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

func formatCount(n int) string {
	return strconv.Itoa(n)
}
