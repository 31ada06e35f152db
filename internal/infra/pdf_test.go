package infra

import (
	"strings"
	"testing"

	"github.com/Amaan2660/InvoiceCreatorEL/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillToLines(t *testing.T) {
	contact := "Mette"
	vat := "DK123"

	t.Run("company with contact and VAT", func(t *testing.T) {
		lines := billToLines(model.Customer{
			Name:      "Acme ApS",
			Address:   "Main Street 1\n1000 København",
			Email:     "billing@acme.example",
			Contact:   &contact,
			VAT:       &vat,
			IsCompany: true,
		})
		assert.Equal(t, []string{
			"Acme ApS",
			"Main Street 1",
			"1000 København",
			"Contact: Mette",
			"VAT No: DK123",
			"Email: billing@acme.example",
		}, lines)
	})

	t.Run("individual never shows VAT even when set", func(t *testing.T) {
		lines := billToLines(model.Customer{
			Name:      "Jens Holm",
			Email:     "jens@example.com",
			VAT:       &vat,
			IsCompany: false,
		})
		assert.NotContains(t, strings.Join(lines, "\n"), "VAT")
	})

	t.Run("contact line omitted when absent", func(t *testing.T) {
		lines := billToLines(model.Customer{Name: "Jens Holm", Email: "jens@example.com"})
		assert.Equal(t, []string{"Jens Holm", "Email: jens@example.com"}, lines)
	})
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"4000":       "4,000.00",
		"1185":       "1,185.00",
		"100":        "100.00",
		"1234567.5":  "1,234,567.50",
		"0":          "0.00",
		"-4000":      "-4,000.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatMoney(decimal.RequireFromString(in)), "input %s", in)
	}
}

func TestCurrencyNote(t *testing.T) {
	rate := decimal.RequireFromString("7.5")
	assert.Equal(t, "EUR (1 EUR = 7.5 DKK)", CurrencyNote("EUR", "DKK", &rate))
	assert.Empty(t, CurrencyNote("DKK", "DKK", nil))
	assert.Empty(t, CurrencyNote("NOK", "DKK", nil), "pass-through currencies get no note")
}

func TestRenderPDFProducesDocument(t *testing.T) {
	renderer := NewInvoiceRenderer(DefaultLetterhead(), "")
	vat := "DK123"

	pdf, err := renderer.RenderPDF(InvoiceData{
		Customer: model.Customer{
			Name:      "Acme ApS",
			Address:   "Main Street 1",
			Email:     "billing@acme.example",
			VAT:       &vat,
			IsCompany: true,
		},
		InvoiceNumber: "1001",
		Currency:      "DKK",
		DueDate:       "2026-09-30",
		Description:   "Transfers for June",
		Total:         decimal.RequireFromString("4000"),
		Count:         10,
		HomeCurrency:  "DKK",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"), "missing PDF magic header")
}

func TestRenderPDFMissingLogoIsNonFatal(t *testing.T) {
	renderer := NewInvoiceRenderer(DefaultLetterhead(), "/nonexistent/logo.png")

	pdf, err := renderer.RenderPDF(InvoiceData{
		Customer:      model.Customer{Name: "Jens Holm", Email: "jens@example.com"},
		InvoiceNumber: "1002",
		Currency:      "DKK",
		Total:         decimal.RequireFromString("500"),
		Count:         1,
		HomeCurrency:  "DKK",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
