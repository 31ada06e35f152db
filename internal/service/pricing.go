package service

// pricing.go — computes the invoice total and booking count from either a
// manual override or imported booking rows, with optional conversion out of
// the home currency.

import (
	"github.com/Amaan2660/InvoiceCreatorEL/internal/apierror"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/model"

	"github.com/shopspring/decimal"
)

// HomeCurrency is the currency booking rates are recorded in before any
// conversion.
const HomeCurrency = "DKK"

// DefaultRates maps each supported target currency to units of home currency
// per 1 unit of target ("1 EUR = 7.5 DKK"). Conversion divides the home total
// by the rate.
func DefaultRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("7.5"),
		"USD": decimal.RequireFromString("6.5"),
		"GBP": decimal.RequireFromString("8.75"),
	}
}

// PricingInput selects the pricing mode: a positive ManualTotal switches to
// manual mode and the imported rows are ignored entirely; otherwise the row
// base rates are summed.
type PricingInput struct {
	ManualTotal    decimal.Decimal
	ManualBookings int
	Rows           []model.BookingRow
	Currency       string
}

// PricingResult carries both the converted total and the home-currency total
// it was derived from. HomeTotal is the single source of truth for the
// specification spreadsheet's trailing total row, so the printed document and
// the spreadsheet can never disagree.
type PricingResult struct {
	Total     decimal.Decimal // in the requested currency, 2 decimal places
	HomeTotal decimal.Decimal // pre-conversion total in HomeCurrency
	Count     int
	Rate      *decimal.Decimal // conversion rate applied; nil when none
}

// PricingEngine holds the fixed conversion table. The table is injected at
// construction rather than read from process-wide state.
type PricingEngine struct {
	home  string
	rates map[string]decimal.Decimal
}

func NewPricingEngine(home string, rates map[string]decimal.Decimal) *PricingEngine {
	return &PricingEngine{home: home, rates: rates}
}

// Quote resolves the pricing mode, totals the bookings, and converts into the
// requested currency. All rounding is banker's rounding (round half to even)
// at 2 decimal places.
func (e *PricingEngine) Quote(in PricingInput) (PricingResult, error) {
	var homeTotal decimal.Decimal
	var count int

	switch {
	case in.ManualTotal.IsPositive():
		homeTotal = in.ManualTotal
		count = in.ManualBookings
	case len(in.Rows) > 0:
		for _, r := range in.Rows {
			homeTotal = homeTotal.Add(r.BaseRate)
		}
		count = len(in.Rows)
	default:
		return PricingResult{}, &apierror.ValidationError{
			Field:  "manual_total",
			Reason: "a positive manual total or an uploaded booking file is required",
		}
	}

	homeTotal = homeTotal.RoundBank(2)
	result := PricingResult{Total: homeTotal, HomeTotal: homeTotal, Count: count}

	if in.Currency == e.home {
		return result, nil
	}
	rate, ok := e.rates[in.Currency]
	if !ok {
		// Unknown currency passes through unconverted — accepted default
		// behavior, not an error.
		return result, nil
	}
	result.Total = homeTotal.Div(rate).RoundBank(2)
	result.Rate = &rate
	return result, nil
}
